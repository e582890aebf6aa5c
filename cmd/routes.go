package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	apiMiddleware := standardMiddleware.Append(app.attachUser)

	mux := pat.New()

	// Review submissions. Registered before /review/:id so pat does not
	// swallow the fixed paths as an id.
	mux.Post("/review/submission", apiMiddleware.ThenFunc(app.submissionHandler.CreateSubmission))
	mux.Get("/review/submission", apiMiddleware.ThenFunc(app.submissionHandler.LookupSubmission))
	mux.Get("/review/stats", apiMiddleware.ThenFunc(app.statsHandler.GetUserStats))
	mux.Get("/review/user", apiMiddleware.ThenFunc(app.submissionHandler.ListUserReviews))
	mux.Get("/reviews", apiMiddleware.ThenFunc(app.submissionHandler.ListReviews))

	// Review pages
	mux.Post("/review", apiMiddleware.ThenFunc(app.reviewPageHandler.CreateReviewPage))
	mux.Get("/review/:id", apiMiddleware.ThenFunc(app.reviewPageHandler.GetReviewPage))

	// Image pre-upload
	mux.Post("/upload", apiMiddleware.ThenFunc(app.uploadHandler.UploadImages))

	// Identity exchange
	mux.Post("/auth/session", standardMiddleware.ThenFunc(app.authHandler.CreateSession))
	mux.Post("/auth/refresh", standardMiddleware.ThenFunc(app.authHandler.RefreshSession))

	// Live feed
	mux.Get("/ws/reviews", http.HandlerFunc(app.ReviewFeedHandler))

	return standardMiddleware.Then(mux)
}
