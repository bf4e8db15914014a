// Package receipt renders a downloadable booking confirmation: a one-page
// PDF carrying an HMAC-signed QR payload the clinic desk can verify.
package receipt

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"medibook/booking"
	"medibook/middleware"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

type Handler struct {
	store  booking.Store
	secret []byte
}

func NewHandler(store booking.Store, secret []byte) *Handler {
	return &Handler{store: store, secret: secret}
}

// SignPayload returns "id|treatment|date|slot|signature".
func SignPayload(secret []byte, id, treatment, date, slot string) string {
	data := fmt.Sprintf("%s|%s|%s|%s", id, treatment, date, slot)
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return data + "|" + sig
}

// VerifyPayload checks the trailing signature over the rest of the payload.
func VerifyPayload(secret []byte, payload string) bool {
	i := strings.LastIndex(payload, "|")
	if i < 0 {
		return false
	}
	data, sig := payload[:i], payload[i+1:]
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(sig))
}

// GET /booking/:id/receipt — only the booking's own patient may download.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	b, err := h.store.BookingByID(r.Context(), id)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load booking")
		return
	}
	if b == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if b.Patient != middleware.EmailFromRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden Access")
		return
	}

	payload := SignPayload(h.secret, b.ID, b.TreatmentName, b.Date, b.Slot)
	qrPNG, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Appointment Confirmation")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Treatment: %s", b.TreatmentName))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", b.Date))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Slot: %s", b.Slot))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Patient: %s", b.Patient))
	pdf.Ln(8)
	if b.Code != "" {
		pdf.Cell(0, 10, fmt.Sprintf("Confirmation Code: %s", b.Code))
		pdf.Ln(8)
	}
	if b.Paid {
		pdf.Cell(0, 10, fmt.Sprintf("Paid - transaction %s", b.TransactionID))
		pdf.Ln(8)
	}
	pdf.Ln(4)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=booking-"+b.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
