package recognition

import (
	"ProjectDevanagari/pkg/response"
	"net/http"
)

var (
	ErrModelFailedToLoad = response.NewError(http.StatusInternalServerError, "Model failed to load")
	ErrNoImageUploaded   = response.NewError(http.StatusBadRequest, "No image uploaded")
	ErrInvalidImageFile  = response.NewError(http.StatusBadRequest, "Invalid image file")
	ErrFailedToPredict   = response.NewError(http.StatusInternalServerError, "Failed to make prediction")
)
