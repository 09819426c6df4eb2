package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
	CartCountKey     contextKey = "cart_count"
	CSRFTokenKey     contextKey = "csrfToken"
)

// Slugify normalizes a name into a URL-safe unique identifier.
func Slugify(name string) string {
	return slug.Make(name)
}

// SlugifyUnique appends a short random suffix; used when the plain slug is
// already taken.
func SlugifyUnique(name string) string {
	return slug.Make(name) + "-" + uuid.NewString()[:6]
}

// GenerateOrderCode builds the merchant invoice number passed to the payment
// gateway: date prefix plus a random block wide enough that the unique
// column constraint never trips at normal volume.
func GenerateOrderCode() string {
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), uuid.New().String()[:8])
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	formatted := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			formatted[field] = fmt.Sprintf("%s is required", fieldErr.Field())
		case "email":
			formatted[field] = "must be a valid email address"
		case "min":
			formatted[field] = fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param())
		case "max":
			formatted[field] = fmt.Sprintf("%s must be at most %s", fieldErr.Field(), fieldErr.Param())
		case "numeric":
			formatted[field] = fmt.Sprintf("%s must be a number", fieldErr.Field())
		case "oneof":
			formatted[field] = fmt.Sprintf("%s must be one of: %s", fieldErr.Field(), fieldErr.Param())
		default:
			formatted[field] = fmt.Sprintf("%s is invalid", fieldErr.Field())
		}
	}
	return formatted
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
