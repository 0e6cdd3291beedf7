package routes

import (
	"net/http"

	"pgfinder/auth"
	"pgfinder/middleware"
	"pgfinder/pgs"
	"pgfinder/web"

	"github.com/julienschmidt/httprouter"
)

func AddPGRoutes(router *httprouter.Router, h *pgs.Handler) {
	router.GET("/pgs", h.GetPGs)
	router.POST("/pgs", middleware.Authenticate(h.CreatePG))
	router.DELETE("/pgs/:id", middleware.Authenticate(h.DeletePG))
}

func AddAdminRoutes(router *httprouter.Router, h *auth.Handler) {
	router.POST("/admin/login", h.Login)
	router.POST("/admin/register", h.Register)
}

// AddStaticRoutes serves disk-stored media. Only registered when the
// disk media backend is active.
func AddStaticRoutes(router *httprouter.Router, uploadDir string) {
	router.ServeFiles("/uploads/*filepath", http.Dir(uploadDir))
}

// AddWebRoutes serves the embedded client application.
func AddWebRoutes(router *httprouter.Router) {
	router.ServeFiles("/app/*filepath", web.Static())
	router.GET("/", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		http.Redirect(w, r, "/app/", http.StatusFound)
	})
}
