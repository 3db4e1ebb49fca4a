package httpapi

import (
	"time"

	"github.com/snackswap/snackswap/internal/server/models"
	"github.com/snackswap/snackswap/internal/validate"
)

// --- requests ---

type signupRequest struct {
	Username        string `json:"username"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Hostel          string `json:"hostel"`
	Room            string `json:"room"`
	Phone           string `json:"phone"`
	Code            string `json:"code"`
}

func (r signupRequest) input() validate.SignupInput {
	return validate.SignupInput{
		Username:        r.Username,
		Name:            r.Name,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		Hostel:          r.Hostel,
		Room:            r.Room,
		Phone:           r.Phone,
	}
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type profileUpdateRequest struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Hostel     string `json:"hostel"`
	RoomNumber string `json:"room_number"`
	Phone      string `json:"phone"`
}

func toProfileUpdate(r profileUpdateRequest) models.ProfileUpdate {
	return models.ProfileUpdate{
		Name:       r.Name,
		Username:   r.Username,
		Email:      r.Email,
		Hostel:     r.Hostel,
		RoomNumber: r.RoomNumber,
		Phone:      r.Phone,
	}
}

type preferencesRequest struct {
	NotifEmail bool `json:"notif_email"`
	NotifApp   bool `json:"notif_app"`
	NotifPromo bool `json:"notif_promo"`
}

func toNotificationPrefs(r preferencesRequest) models.NotificationPrefs {
	return models.NotificationPrefs{
		NotifEmail: r.NotifEmail,
		NotifApp:   r.NotifApp,
		NotifPromo: r.NotifPromo,
	}
}

type foodRequest struct {
	FoodName       string     `json:"food_name"`
	Quantity       string     `json:"quantity"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Price          *float64   `json:"price"`
	SwapFor        []string   `json:"swap_for"`
	PickupLocation string     `json:"pickup_location"`
	AvailableUntil *time.Time `json:"available_until"`
	ImageKey       string     `json:"image_key"`
}

type foodUpdateRequest struct {
	FoodName    string   `json:"food_name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Quantity    string   `json:"quantity"`
	Price       *float64 `json:"price"`
}

type createSwapRequest struct {
	FoodID string `json:"food_id" binding:"required"`
}

type respondSwapRequest struct {
	Accept bool `json:"accept"`
}

type sendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// --- responses ---

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type userResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Hostel     string  `json:"hostel"`
	RoomNumber string  `json:"room_number"`
	Phone      string  `json:"phone"`
	Rating     float64 `json:"rating"`
	Points     int     `json:"points"`
	NotifEmail bool    `json:"notif_email"`
	NotifApp   bool    `json:"notif_app"`
	NotifPromo bool    `json:"notif_promo"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Name:       u.Name,
		Hostel:     u.Hostel,
		RoomNumber: u.RoomNumber,
		Phone:      u.Phone,
		Rating:     u.Rating,
		Points:     u.Points,
		NotifEmail: u.NotifEmail,
		NotifApp:   u.NotifApp,
		NotifPromo: u.NotifPromo,
	}
}

type ownerResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Name       string  `json:"name"`
	Hostel     string  `json:"hostel"`
	RoomNumber string  `json:"room_number"`
	Rating     float64 `json:"rating"`
}

func toOwnerResponse(u models.UserSummary) ownerResponse {
	return ownerResponse{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Hostel:     u.Hostel,
		RoomNumber: u.RoomNumber,
		Rating:     u.Rating,
	}
}

type foodResponse struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	FoodName       string     `json:"food_name"`
	Quantity       string     `json:"quantity"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Price          *float64   `json:"price"`
	SwapFor        []string   `json:"swap_for"`
	ImageURL       *string    `json:"image_url"`
	PickupLocation string     `json:"pickup_location"`
	AvailableUntil *time.Time `json:"available_until"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toFoodResponse(f *models.Food) foodResponse {
	return foodResponse{
		ID:             f.ID,
		UserID:         f.UserID,
		FoodName:       f.FoodName,
		Quantity:       f.Quantity,
		Description:    f.Description,
		Category:       f.Category,
		Price:          f.Price,
		SwapFor:        f.SwapFor,
		ImageURL:       f.ImageURL,
		PickupLocation: f.PickupLocation,
		AvailableUntil: f.AvailableUntil,
		Status:         f.Status,
		CreatedAt:      f.CreatedAt,
	}
}

type foodWithOwnerResponse struct {
	foodResponse
	Owner ownerResponse `json:"owner"`
}

func toFoodWithOwnerResponse(f *models.FoodWithOwner) foodWithOwnerResponse {
	return foodWithOwnerResponse{
		foodResponse: toFoodResponse(&f.Food),
		Owner:        toOwnerResponse(f.Owner),
	}
}

type foodSummaryResponse struct {
	ID       string  `json:"id"`
	FoodName string  `json:"food_name"`
	ImageURL *string `json:"image_url"`
	Category string  `json:"category"`
}

type swapResponse struct {
	ID          string    `json:"id"`
	FoodID      string    `json:"food_id"`
	RequesterID string    `json:"requester_id"`
	OwnerID     string    `json:"owner_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func toSwapResponse(s *models.Swap) swapResponse {
	return swapResponse{
		ID:          s.ID,
		FoodID:      s.FoodID,
		RequesterID: s.RequesterID,
		OwnerID:     s.OwnerID,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
	}
}

type swapDetailsResponse struct {
	swapResponse
	Food         foodSummaryResponse `json:"food"`
	Counterparty ownerResponse       `json:"counterparty"`
}

func toSwapDetailsResponse(s *models.SwapWithDetails) swapDetailsResponse {
	return swapDetailsResponse{
		swapResponse: toSwapResponse(&s.Swap),
		Food: foodSummaryResponse{
			ID:       s.Food.ID,
			FoodName: s.Food.FoodName,
			ImageURL: s.Food.ImageURL,
			Category: s.Food.Category,
		},
		Counterparty: toOwnerResponse(s.Counterparty),
	}
}

type messageResponse struct {
	ID        string    `json:"id"`
	SwapID    string    `json:"swap_id"`
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func toMessageResponse(m *models.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		SwapID:    m.SwapID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

type presignResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}
