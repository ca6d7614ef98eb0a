package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// decodeStrict decodes a JSON body rejecting unknown fields and mistyped values.
// It reports false without error when the body is empty.
func decodeStrict(c *gin.Context, dest interface{}) (bool, error) {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return false, nil
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return true, err
	}
	if dec.More() {
		return true, errors.New("unexpected data after JSON body")
	}
	return true, nil
}

// decodeLenient binds a JSON body through gin, ignoring fields it does not know.
// It reports false without error when the body is empty.
func decodeLenient(c *gin.Context, dest interface{}) (bool, error) {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return false, nil
	}
	if err := c.ShouldBindJSON(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return true, err
	}
	return true, nil
}
