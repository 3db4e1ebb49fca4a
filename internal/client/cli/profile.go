package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/snackswap/snackswap/internal/client/api"
)

// Profile prints the current user's profile.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.client.Profile(ctx)
	if err != nil {
		reportErr(err)
		return err
	}
	a.user = u

	printlnFn(fmt.Sprintf("%s (@%s)", u.Name, u.Username))
	printlnFn("Email:", u.Email)
	printlnFn(fmt.Sprintf("Hostel %s, room %s", u.Hostel, u.RoomNumber))
	printlnFn("Phone:", u.Phone)
	printlnFn(fmt.Sprintf("Rating %.1f, %d points", u.Rating, u.Points))
	return nil
}

// EditProfile updates the profile fields, keeping current values on empty
// input.
func (a *App) EditProfile(ctx context.Context) error {
	u, err := a.client.Profile(ctx)
	if err != nil {
		reportErr(err)
		return err
	}

	form := api.ProfileForm{
		Name:       u.Name,
		Username:   u.Username,
		Email:      u.Email,
		Hostel:     u.Hostel,
		RoomNumber: u.RoomNumber,
		Phone:      u.Phone,
	}

	if v, err := getSimpleText(a.reader, fmt.Sprintf("Full name [%s]", form.Name), os.Stdout); err != nil {
		return err
	} else if v != "" {
		form.Name = v
	}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Username [%s]", form.Username), os.Stdout); err != nil {
		return err
	} else if v != "" {
		form.Username = v
	}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", form.Email), os.Stdout); err != nil {
		return err
	} else if v != "" {
		form.Email = v
	}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Hostel [%s]", form.Hostel), os.Stdout); err != nil {
		return err
	} else if v != "" {
		form.Hostel = v
	}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Room [%s]", form.RoomNumber), os.Stdout); err != nil {
		return err
	} else if v != "" {
		form.RoomNumber = v
	}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Phone [%s]", form.Phone), os.Stdout); err != nil {
		return err
	} else if v != "" {
		form.Phone = v
	}

	if err := a.client.UpdateProfile(ctx, form); err != nil {
		reportErr(err)
		return err
	}

	printlnFn("Profile updated.")
	return nil
}

// Prefs toggles the notification preferences.
func (a *App) Prefs(ctx context.Context) error {
	u, err := a.client.Profile(ctx)
	if err != nil {
		reportErr(err)
		return err
	}

	form := api.PreferencesForm{
		NotifEmail: u.NotifEmail,
		NotifApp:   u.NotifApp,
		NotifPromo: u.NotifPromo,
	}

	if v, err := getConfirm(a.reader, fmt.Sprintf("Email notifications (currently %t)?", form.NotifEmail), os.Stdout); err != nil {
		return err
	} else {
		form.NotifEmail = v
	}
	if v, err := getConfirm(a.reader, fmt.Sprintf("In-app notifications (currently %t)?", form.NotifApp), os.Stdout); err != nil {
		return err
	} else {
		form.NotifApp = v
	}
	if v, err := getConfirm(a.reader, fmt.Sprintf("Promotional emails (currently %t)?", form.NotifPromo), os.Stdout); err != nil {
		return err
	} else {
		form.NotifPromo = v
	}

	if err := a.client.UpdatePreferences(ctx, form); err != nil {
		reportErr(err)
		return err
	}

	printlnFn("Preferences saved.")
	return nil
}

// Passwd changes the password after re-entering the current one.
func (a *App) Passwd(ctx context.Context) error {
	current, err := getPassword(os.Stdout, "Current password")
	if err != nil {
		return err
	}
	next, err := getPassword(os.Stdout, "New password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(os.Stdout, "Confirm new password")
	if err != nil {
		return err
	}
	if next != confirm {
		printlnFn("Passwords do not match.")
		return nil
	}

	if err := a.client.ChangePassword(ctx, current, next); err != nil {
		reportErr(err)
		return err
	}

	printlnFn("Password changed.")
	return nil
}
