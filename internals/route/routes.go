// file: internals/route/routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"linksclub_backend/internals/configs"
	ddroute "linksclub_backend/internals/features/finance/directdebit/route"
	feeroute "linksclub_backend/internals/features/finance/fees/route"
	invoiceroute "linksclub_backend/internals/features/finance/invoices/route"
	memberroute "linksclub_backend/internals/features/members/route"
	noticeroute "linksclub_backend/internals/features/notices/route"
	noticeservice "linksclub_backend/internals/features/notices/service"
	userroute "linksclub_backend/internals/features/users/route"
	"linksclub_backend/internals/middlewares/auth"
)

// SetupRoutes wires every feature under the app. Public surface is login
// plus the health check; everything else lives behind JWT + admin role on
// /api/a.
func SetupRoutes(app *fiber.App, db *gorm.DB, notifier *noticeservice.Notifier) {
	userroute.AuthRoutes(app, db)

	admin := app.Group("/api/a",
		auth.AuthJWT(auth.AuthJWTOpts{Secret: configs.JWTSecret, AllowCookieFallback: true}),
		auth.RequireAdmin(),
	)

	userroute.MeRoutes(admin, db)
	memberroute.MemberAdminRoutes(admin, db)
	feeroute.FeeItemAdminRoutes(admin, db)
	ddroute.DirectDebitAdminRoutes(admin, db)
	invoiceroute.InvoiceAdminRoutes(admin, db)
	noticeroute.NoticeAdminRoutes(admin, db, notifier)
}
