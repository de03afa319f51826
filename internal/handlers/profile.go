package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/kirana/internal/middleware"
	"github.com/example/kirana/internal/models"
)

// ProfileHandler manages the customer profile: contact details, the last
// used shipping address and favorites.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// GetProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":              user.ID,
			"name":            user.Name,
			"email":           user.Email,
			"phone":           user.Phone,
			"favorites":       user.Favorites,
			"shippingAddress": user.ShippingAddress,
			"createdAt":       user.CreatedAt,
			"updatedAt":       user.UpdatedAt,
		},
	})
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateProfile updates contact fields. The email is the login identity
// and stays fixed; order snapshots are never rewritten.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	updates["updated_at"] = time.Now()

	if err := h.db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "profile updated"})
}

// AddFavorite marks a product as a favorite. Adding an existing favorite
// is a no-op, so an optimistic client can safely retry.
func (h *ProfileHandler) AddFavorite(c *fiber.Ctx) error {
	return h.setFavorite(c, true)
}

// RemoveFavorite clears a favorite. Removing a missing favorite is a
// no-op.
func (h *ProfileHandler) RemoveFavorite(c *fiber.Ctx) error {
	return h.setFavorite(c, false)
}

func (h *ProfileHandler) setFavorite(c *fiber.Ctx, add bool) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	productID := c.Params("productId")
	if productID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing product id")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	favorites := user.Favorites[:0:0]
	found := false
	for _, f := range user.Favorites {
		if f == productID {
			found = true
			if !add {
				continue
			}
		}
		favorites = append(favorites, f)
	}
	if add && !found {
		favorites = append(favorites, productID)
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", userID).
		Update("favorites", favorites).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"favorites": favorites}})
}
