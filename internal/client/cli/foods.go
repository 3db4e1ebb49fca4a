package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/snackswap/snackswap/internal/client/api"
	"github.com/snackswap/snackswap/internal/client/state"
)

// readFile is a test seam for loading image files from disk.
var readFile = os.ReadFile

// List browses the catalog, optionally narrowed by a search term and a
// category.
func (a *App) List(ctx context.Context) error {
	search, err := getSimpleText(a.reader, "Search (empty for all)", os.Stdout)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Category (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	foods, err := a.client.ListFoods(ctx, search, category)
	if err != nil {
		reportErr(err)
		return err
	}

	if len(foods) == 0 {
		printlnFn("Nothing on offer right now.")
		return nil
	}
	for _, f := range foods {
		printlnFn(formatListing(f))
	}
	return nil
}

// Show prints one listing in full.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Listing id", os.Stdout)
	if err != nil {
		return err
	}

	f, err := a.client.GetFood(ctx, id)
	if err != nil {
		reportErr(err)
		return err
	}

	printlnFn(fmt.Sprintf("%s (%s)", f.FoodName, f.Category))
	printlnFn("Quantity:", f.Quantity)
	if f.Description != "" {
		printlnFn("Description:", f.Description)
	}
	if f.Price != nil {
		printlnFn(fmt.Sprintf("Price: %.2f", *f.Price))
	}
	if len(f.SwapFor) > 0 {
		printlnFn("Swap for:", strings.Join(f.SwapFor, ", "))
	}
	if f.ImageURL != nil {
		printlnFn("Photo:", *f.ImageURL)
	}
	printlnFn("Pickup:", f.PickupLocation)
	printlnFn("Status:", f.Status)
	return nil
}

// Add posts a new listing, optionally uploading a photo first.
func (a *App) Add(ctx context.Context) error {
	form := api.FoodForm{}
	var err error

	if form.FoodName, err = getSimpleText(a.reader, "Food name", os.Stdout); err != nil {
		return err
	}
	if form.Quantity, err = getSimpleText(a.reader, "Quantity (e.g. '2 servings')", os.Stdout); err != nil {
		return err
	}
	if form.Category, err = getSimpleText(a.reader, "Category (Snacks, Meals, Drinks, Desserts)", os.Stdout); err != nil {
		return err
	}
	if form.Description, err = GetMultiline(a.reader, "Description", os.Stdout); err != nil {
		return err
	}
	if form.PickupLocation, err = getSimpleText(a.reader, "Pickup location", os.Stdout); err != nil {
		return err
	}

	price, err := getSimpleText(a.reader, "Price (empty for free/swap-only)", os.Stdout)
	if err != nil {
		return err
	}
	if price != "" {
		v, err := strconv.ParseFloat(price, 64)
		if err != nil {
			printlnFn("Price must be a number.")
			return nil
		}
		form.Price = &v
	}

	swapFor, err := getSimpleText(a.reader, "Swap for (comma-separated, empty for none)", os.Stdout)
	if err != nil {
		return err
	}
	if swapFor != "" {
		for _, item := range strings.Split(swapFor, ",") {
			if item = strings.TrimSpace(item); item != "" {
				form.SwapFor = append(form.SwapFor, item)
			}
		}
	}

	imagePath, err := getSimpleText(a.reader, "Photo file path (empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	if imagePath != "" {
		key, uploadErr := a.uploadImage(ctx, imagePath)
		if uploadErr != nil {
			reportErr(uploadErr)
			return uploadErr
		}
		form.ImageKey = key
	}

	f, err := a.client.CreateFood(ctx, form)
	if err != nil {
		reportErr(err)
		return err
	}

	printlnFn(fmt.Sprintf("Listed %s (id %s).", f.FoodName, f.ID))
	return nil
}

// uploadImage reads the file, asks the server for a presigned URL and PUTs
// the bytes straight to storage. It returns the storage key to attach to
// the listing.
func (a *App) uploadImage(ctx context.Context, path string) (string, error) {
	data, err := readFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	key, uploadURL, err := a.client.PresignUpload(ctx)
	if err != nil {
		return "", err
	}
	if err := a.client.UploadImage(ctx, uploadURL, data); err != nil {
		return "", err
	}
	return key, nil
}

// Edit updates one of the caller's listings.
func (a *App) Edit(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Listing id", os.Stdout)
	if err != nil {
		return err
	}

	current, err := a.client.GetFood(ctx, id)
	if err != nil {
		reportErr(err)
		return err
	}

	form := api.FoodUpdateForm{
		FoodName:    current.FoodName,
		Description: current.Description,
		Category:    current.Category,
		Quantity:    current.Quantity,
		Price:       current.Price,
	}

	if v, err := getSimpleText(a.reader, fmt.Sprintf("Food name [%s]", form.FoodName), os.Stdout); err != nil {
		return err
	} else if v != "" {
		form.FoodName = v
	}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Quantity [%s]", form.Quantity), os.Stdout); err != nil {
		return err
	} else if v != "" {
		form.Quantity = v
	}
	if v, err := getSimpleText(a.reader, fmt.Sprintf("Category [%s]", form.Category), os.Stdout); err != nil {
		return err
	} else if v != "" {
		form.Category = v
	}
	if v, err := getSimpleText(a.reader, "Description (empty to keep)", os.Stdout); err != nil {
		return err
	} else if v != "" {
		form.Description = v
	}
	if v, err := getSimpleText(a.reader, "Price (empty to keep)", os.Stdout); err != nil {
		return err
	} else if v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			printlnFn("Price must be a number.")
			return nil
		}
		form.Price = &p
	}

	if err := a.client.UpdateFood(ctx, id, form); err != nil {
		reportErr(err)
		return err
	}

	printlnFn("Listing updated.")
	return nil
}

// Delete removes a listing after an explicit confirmation. The target is
// remembered so the prompt can show what is about to disappear.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Listing id", os.Stdout)
	if err != nil {
		return err
	}

	f, err := a.client.GetFood(ctx, id)
	if err != nil {
		reportErr(err)
		return err
	}

	a.pendingDelete = &state.DeleteTarget{FoodID: f.ID, FoodName: f.FoodName}
	ok, err := getConfirm(a.reader, fmt.Sprintf("Delete '%s'?", a.pendingDelete.FoodName), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		a.pendingDelete = nil
		printlnFn("Kept it.")
		return nil
	}

	if err := a.client.DeleteFood(ctx, a.pendingDelete.FoodID); err != nil {
		reportErr(err)
		return err
	}

	a.pendingDelete = nil
	printlnFn("Listing deleted.")
	return nil
}

func formatListing(f api.FoodWithOwner) string {
	price := "free"
	if f.Price != nil {
		price = fmt.Sprintf("%.2f", *f.Price)
	}
	return fmt.Sprintf("%s | %s (%s) | %s | by %s @ %s | %s",
		f.ID, f.FoodName, f.Category, price, f.Owner.Username, f.Owner.Hostel, f.Status)
}
