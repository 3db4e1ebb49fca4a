// Package validate holds the form-validation rules shared by the terminal
// client and the server's request handlers. Rules operate on plain values
// and report field-keyed messages so callers can render them inline.
package validate

import "regexp"

const MinPasswordLength = 6

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe    = regexp.MustCompile(`^[0-9]{10}$`)
)

// Username reports whether s is 3-20 characters of letters, digits or
// underscore.
func Username(s string) bool { return usernameRe.MatchString(s) }

// Email reports whether s looks like an email address.
func Email(s string) bool { return emailRe.MatchString(s) }

// Phone reports whether s is exactly 10 digits.
func Phone(s string) bool { return phoneRe.MatchString(s) }

// SignupInput is the full set of fields collected before the OTP gate.
type SignupInput struct {
	Username        string
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Hostel          string
	Room            string
	Phone           string
}

// Signup validates every signup field and returns a field→message map.
// An empty map means the input passed.
func Signup(in SignupInput) map[string]string {
	errs := map[string]string{}

	switch {
	case in.Username == "":
		errs["username"] = "Username is required"
	case !Username(in.Username):
		errs["username"] = "Username: 3-20 characters, letters/numbers/underscore only"
	}

	switch {
	case in.Name == "":
		errs["name"] = "Full name is required"
	case len(in.Name) < 3:
		errs["name"] = "Name must be at least 3 characters"
	}

	switch {
	case in.Email == "":
		errs["email"] = "Email is required"
	case !Email(in.Email):
		errs["email"] = "Please enter a valid email address"
	}

	switch {
	case in.Password == "":
		errs["password"] = "Password is required"
	case len(in.Password) < MinPasswordLength:
		errs["password"] = "Password must be at least 6 characters"
	}

	switch {
	case in.ConfirmPassword == "":
		errs["confirm_password"] = "Please confirm your password"
	case in.Password != in.ConfirmPassword:
		errs["confirm_password"] = "Passwords do not match"
	}

	if in.Hostel == "" {
		errs["hostel"] = "Please select your hostel"
	}

	if in.Room == "" {
		errs["room"] = "Room number is required"
	}

	switch {
	case in.Phone == "":
		errs["phone"] = "Phone number is required"
	case !Phone(in.Phone):
		errs["phone"] = "Phone must be exactly 10 digits"
	}

	return errs
}

// FoodCategories is the allowed category enum for listings.
var FoodCategories = []string{"Snacks", "Meals", "Drinks", "Desserts"}

// FoodCategory reports whether c is one of the allowed categories.
func FoodCategory(c string) bool {
	for _, v := range FoodCategories {
		if v == c {
			return true
		}
	}
	return false
}
