package products

import (
	"errors"
	"mime/multipart"
	"net/http"
	"regexp"
	"shop_admin_server/lib"
	"shop_admin_server/services"
	"shop_admin_server/structs"
	"strconv"
	"strings"
)

const multipartMemory = 32 << 20

// variants[0][image] from HTML forms, variants.0.image from dotted clients
var variantImageKey = regexp.MustCompile(`^variants(?:\[(\d+)\]\[image\]|\.(\d+)\.image)$`)

// parseProductRequest accepts either a JSON body or a multipart form whose
// "data" field carries the JSON and whose file parts carry the uploads
func parseProductRequest(r *http.Request) (*structs.ProductRequest, *services.ProductUploads, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		body, err := lib.ExtractAndValidateBody[structs.ProductRequest](r)
		return body, nil, err
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, nil, lib.NewFieldError("body", "The request body must be a valid multipart form.")
	}

	var body structs.ProductRequest
	if data := r.FormValue("data"); data != "" {
		if err := lib.DecodeJSON([]byte(data), &body); err != nil {
			var ve *lib.ValidationError
			if errors.As(err, &ve) {
				return nil, nil, ve
			}
			return nil, nil, lib.NewFieldError("data", "The data field must be valid JSON.")
		}
	}
	if err := lib.Validate(&body); err != nil {
		return nil, nil, err
	}

	return &body, collectUploads(r.MultipartForm), nil
}

func collectUploads(form *multipart.Form) *services.ProductUploads {
	uploads := &services.ProductUploads{Variants: map[int]*multipart.FileHeader{}}
	if form == nil {
		return uploads
	}

	for key, files := range form.File {
		if len(files) == 0 {
			continue
		}
		switch {
		case key == "featuredImage":
			uploads.Featured = files[0]
		case key == "gallery" || key == "gallery[]":
			uploads.Gallery = append(uploads.Gallery, files...)
		default:
			m := variantImageKey.FindStringSubmatch(key)
			if m == nil {
				continue
			}
			idx, err := strconv.Atoi(m[1] + m[2])
			if err != nil {
				continue
			}
			uploads.Variants[idx] = files[0]
		}
	}
	return uploads
}
