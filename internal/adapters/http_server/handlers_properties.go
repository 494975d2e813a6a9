package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ZaidAr98/PropTrack/internal/app"
	"github.com/ZaidAr98/PropTrack/internal/domain"
)

const (
	maxImages     = 5
	maxUploadSize = 32 << 20
)

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	pg := parsePage(r.URL.Query(), 10)
	items, pagination, err := h.Properties.List(r.Context(), pg)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"properties": items,
		"pagination": pagination,
	})
}

func (h *Handlers) searchProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pg := parsePage(q, 10)
	items, pagination, err := h.Properties.Search(r.Context(), parseFilter(q), pg)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"properties": items,
		"pagination": pagination,
	})
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Property not found")
		return
	}
	p, err := h.Properties.Get(r.Context(), id)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"property": p})
}

func (h *Handlers) addProperty(w http.ResponseWriter, r *http.Request) {
	in, uploads, _, err := parsePropertyForm(r)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	p, err := h.Properties.Create(r.Context(), in, uploads)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Property created successfully",
		"property": p,
	})
}

func (h *Handlers) editProperty(w http.ResponseWriter, r *http.Request) {
	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Property not found")
		return
	}
	in, uploads, kept, err := parsePropertyForm(r)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	p, err := h.Properties.Update(r.Context(), id, in, kept, uploads)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Property updated successfully",
		"property": p,
	})
}

func (h *Handlers) archiveProperty(w http.ResponseWriter, r *http.Request) {
	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Property not found")
		return
	}
	p, err := h.Properties.Archive(r.Context(), id)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Property archived successfully",
		"property": p,
	})
}

func (h *Handlers) deleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Property not found")
		return
	}
	if err := h.Properties.Delete(r.Context(), id); err != nil {
		h.respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Property deleted permanently"})
}

// parsePropertyForm normalizes the multipart create/edit form: required
// fields checked, numeric fields coerced, amenities and existingImages
// accepted as JSON arrays or comma-separated strings, image files read.
func parsePropertyForm(r *http.Request) (app.PropertyInput, []app.ImageUpload, []string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return app.PropertyInput{}, nil, nil, domain.Invalid("Invalid multipart form")
	}

	required := []string{"title", "description", "price", "type", "location", "bedrooms", "bathrooms", "area"}
	for _, f := range required {
		if strings.TrimSpace(r.FormValue(f)) == "" {
			return app.PropertyInput{}, nil, nil, domain.Invalid("All required fields must be provided")
		}
	}

	price, err1 := strconv.ParseFloat(r.FormValue("price"), 64)
	area, err2 := strconv.ParseFloat(r.FormValue("area"), 64)
	bedrooms, err3 := strconv.Atoi(r.FormValue("bedrooms"))
	bathrooms, err4 := strconv.Atoi(r.FormValue("bathrooms"))
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return app.PropertyInput{}, nil, nil, domain.Invalid("Price, bedrooms, bathrooms and area must be numbers")
	}

	in := app.PropertyInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       price,
		Type:        r.FormValue("type"),
		Location:    r.FormValue("location"),
		Bedrooms:    bedrooms,
		Bathrooms:   bathrooms,
		Area:        area,
		Amenities:   parseStringList(r.FormValue("amenities")),
	}

	kept := parseStringList(r.FormValue("existingImages"))

	files := r.MultipartForm.File["images"]
	if len(files) > maxImages {
		return app.PropertyInput{}, nil, nil, domain.Invalid("Maximum 5 images allowed")
	}
	var uploads []app.ImageUpload
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return app.PropertyInput{}, nil, nil, domain.Invalid("Could not read uploaded file")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return app.PropertyInput{}, nil, nil, domain.Invalid("Could not read uploaded file")
		}
		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}
		uploads = append(uploads, app.ImageUpload{Data: data, ContentType: ct})
	}

	return in, uploads, kept, nil
}

// parseStringList accepts a JSON array or a comma-separated string.
func parseStringList(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if strings.HasPrefix(v, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(v), &arr); err == nil {
			return arr
		}
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
