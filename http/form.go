package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"houseprice/ml"
	"houseprice/monitoring"
	"houseprice/pricing"
	"houseprice/property"
	"houseprice/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type pageData struct {
	Options    property.Catalog
	Form       property.Input
	Errors     []property.FieldError
	ModelError string
	ModelFile  string
	Error      string
	Result     *resultView
}

type resultView struct {
	Price   string
	Unit    string
	Summary []view.SummaryLine
}

func (h *Handlers) newPage() pageData {
	page := pageData{Options: property.Options(), ModelFile: h.modelFile}
	if err := h.predictor.Err(); err != nil {
		if errors.Is(err, ml.ErrArtifactMissing) {
			page.ModelError = "Model file '" + h.modelFile + "' not found!"
		} else {
			page.ModelError = "Model file '" + h.modelFile + "' could not be loaded: " + err.Error()
		}
	}
	return page
}

func (h *Handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, http.StatusOK, h.newPage())
}

func (h *Handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	page := h.newPage()
	if err := r.ParseForm(); err != nil {
		page.Error = "Could not read the form: " + err.Error()
		h.renderPage(w, http.StatusBadRequest, page)
		return
	}
	page.Form = property.Input{
		PostedBy:          r.PostFormValue(property.FieldPostedBy),
		BHK:               r.PostFormValue(property.FieldBHK),
		City:              r.PostFormValue(property.FieldCity),
		SquareFtBin:       r.PostFormValue(property.FieldSquareFtBin),
		UnderConstruction: checked(r.PostFormValue("under_construction")),
		RERAApproved:      checked(r.PostFormValue("rera_approved")),
	}

	req, err := property.NewRequest(page.Form)
	if err != nil {
		h.metrics.Record(monitoring.OutcomeValidationFailed, 0)
		page.Errors = property.FieldErrors(err)
		h.renderPage(w, http.StatusUnprocessableEntity, page)
		return
	}

	pred, err := h.predict(r.Context(), req)
	if err != nil {
		status, _ := predictFailure(err)
		if errors.Is(err, pricing.ErrModelUnavailable) {
			page.Error = "Model not loaded. Please check the model file."
		} else {
			page.Error = "Error making prediction: " + inferenceCause(err).Error()
		}
		h.renderPage(w, status, page)
		return
	}

	page.Result = &resultView{
		Price:   view.FormatPrice(pred.PriceLacs),
		Unit:    view.CurrencyUnit,
		Summary: view.Summary(req),
	}
	h.renderPage(w, http.StatusOK, page)
}

func (h *Handlers) renderPage(w http.ResponseWriter, status int, page pageData) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, "index.html", page); err != nil {
		h.logger.Error("render page", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// inferenceCause strips the InferenceError prefix so the page shows one.
func inferenceCause(err error) error {
	var ie *pricing.InferenceError
	if errors.As(err, &ie) && ie.Err != nil {
		return ie.Err
	}
	return err
}

func checked(v string) bool {
	switch v {
	case "on", "1", "true", "yes":
		return true
	}
	return false
}
