package pay

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"medibook/db"
	"medibook/middleware"
	"medibook/models"
	"medibook/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
	"go.mongodb.org/mongo-driver/bson"
)

type Handler struct {
	store *db.Mongo
}

func NewHandler(store *db.Mongo, stripeSecret string) *Handler {
	stripe.Key = stripeSecret
	return &Handler{store: store}
}

// POST /create-payment-intent — charges are price * 100 minor units, USD,
// card only.
func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Price int64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid price")
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(body.Price * 100),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		log.Printf("payment intent creation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Payment provider error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"clientSecret": intent.ClientSecret,
	})
}

// PATCH /booking/:id — mark the booking paid, record the transaction id,
// and append a payment record.
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var body struct {
		TransactionID string `json:"transactionId"`
		Amount        int64  `json:"amount,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TransactionID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "transactionId is required")
		return
	}

	result, err := h.store.Bookings.UpdateOne(
		r.Context(),
		bson.M{"id": id},
		bson.M{"$set": bson.M{"paid": true, "transactionId": body.TransactionID}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update booking")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}

	payment := models.Payment{
		ID:            utils.GetUUID(),
		BookingID:     id,
		Patient:       middleware.EmailFromRequest(r),
		Amount:        body.Amount,
		TransactionID: body.TransactionID,
		CreatedAt:     time.Now(),
	}
	if _, err := h.store.Payments.InsertOne(r.Context(), payment); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, payment)
}
