package routes

import (
	"net/http"
	"strings"

	"medibook/auth"
	"medibook/booking"
	"medibook/doctors"
	"medibook/middleware"
	"medibook/pay"
	"medibook/ratelim"
	"medibook/receipt"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, a *auth.Handler, mw *middleware.Auth) {
	router.GET("/users", mw.Authenticate(a.ListUsers))
	router.GET("/admin/:email", a.CheckAdmin)
	router.POST("/logout", mw.Authenticate(a.Logout))

	// httprouter cannot register the static /user/admin/:email next to the
	// /user/:email wildcard, so both PUTs share a catch-all and dispatch on
	// the tail.
	makeAdmin := middleware.Chain(mw.Authenticate, mw.RequireAdmin)(a.MakeAdmin)
	router.PUT("/user/*rest", UserPutDispatcher(a.UpsertUser, makeAdmin))
}

// UserPutDispatcher multiplexes the /user/*rest catch-all: "admin/<email>"
// goes to the elevation handler, a bare "<email>" to the upsert, anything
// deeper is not found. Both handlers receive the email as the :email param.
func UserPutDispatcher(upsert, makeAdmin httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		rest := strings.Trim(ps.ByName("rest"), "/")
		if email, ok := strings.CutPrefix(rest, "admin/"); ok {
			if email == "" || strings.Contains(email, "/") {
				http.NotFound(w, r)
				return
			}
			makeAdmin(w, r, httprouter.Params{{Key: "email", Value: email}})
			return
		}
		if rest == "" || strings.Contains(rest, "/") {
			http.NotFound(w, r)
			return
		}
		upsert(w, r, httprouter.Params{{Key: "email", Value: rest}})
	}
}

func AddBookingRoutes(router *httprouter.Router, b *booking.Handler, rc *receipt.Handler, mw *middleware.Auth, rl *ratelim.RateLimiter) {
	router.GET("/services", b.ListServices)
	router.GET("/available", b.GetAvailable)
	router.GET("/ws/available", booking.HandleWS)

	router.GET("/booking", mw.Authenticate(b.ListForPatient))
	router.POST("/booking", middleware.Chain(rl.Limit, mw.Authenticate)(b.Create))
	router.GET("/booking/:id", mw.Authenticate(b.GetByID))
	router.GET("/booking/:id/receipt", mw.Authenticate(rc.Download))
}

func AddDoctorRoutes(router *httprouter.Router, d *doctors.Handler, mw *middleware.Auth) {
	admin := middleware.Chain(mw.Authenticate, mw.RequireAdmin)

	router.GET("/doctors", admin(d.List))
	router.POST("/add-doctor", admin(d.Add))
	router.DELETE("/doctor/:email", admin(d.Delete))
	router.POST("/doctor/:email/photo", admin(d.UploadPhoto))
}

func AddPayRoutes(router *httprouter.Router, p *pay.Handler, mw *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/create-payment-intent", middleware.Chain(rl.Limit, mw.Authenticate)(p.CreatePaymentIntent))
	router.PATCH("/booking/:id", mw.Authenticate(p.MarkPaid))
}
