package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-api/internal/application/auth"
	"github.com/jhoicas/farmacia-api/internal/application/billing"
	"github.com/jhoicas/farmacia-api/internal/application/inventory"
	"github.com/jhoicas/farmacia-api/internal/application/ledger"
	"github.com/jhoicas/farmacia-api/internal/application/usecase"
	"github.com/jhoicas/farmacia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	MovementUC *inventory.MovementUseCase
	LedgerUC   *ledger.LedgerUseCase
	MedicineUC *usecase.MedicineUseCase
	PlaceUC    *usecase.PlaceUseCase
	PatientUC  *usecase.PatientUseCase
	InvoiceUC  *billing.InvoiceUseCase
	PDFUC      *billing.PDFUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; registro solo para admin autenticado
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin),
		authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (listado de personal, solo admin)
	protected.Get("/users", RequireRole(entity.RoleAdmin), authHandler.ListUsers)

	// Medicines (alta solo admin, edición solo admin)
	medicines := protected.Group("/medicines")
	medicineHandler := NewMedicineHandler(deps.MovementUC, deps.MedicineUC)
	medicines.Post("/", RequireRole(entity.RoleAdmin), medicineHandler.Create)
	medicines.Get("/", medicineHandler.ListWarehouse)
	medicines.Get("/low-stock", RequireRole(entity.RoleAdmin, entity.RoleStaff), medicineHandler.LowStock)
	medicines.Put("/:id", RequireRole(entity.RoleAdmin), medicineHandler.Update)

	// Inventory: traslados (admin/staff), despachos (doctor), historial, stats (admin)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.LedgerUC)
	invGroup.Post("/transfers", RequireRole(entity.RoleAdmin, entity.RoleStaff), inventoryHandler.Transfer)
	invGroup.Post("/dispense", RequireRole(entity.RoleDoctor), inventoryHandler.Dispense)
	invGroup.Get("/history", inventoryHandler.History)
	invGroup.Get("/stats", RequireRole(entity.RoleAdmin), inventoryHandler.Stats)

	// Places
	places := protected.Group("/places")
	placeHandler := NewPlaceHandler(deps.PlaceUC, deps.MedicineUC)
	places.Post("/", RequireRole(entity.RoleAdmin), placeHandler.Create)
	places.Get("/", placeHandler.List)
	places.Get("/:id/medicines", placeHandler.ListMedicines)

	// Patients y sus facturas
	patients := protected.Group("/patients")
	patientHandler := NewPatientHandler(deps.PatientUC, deps.InvoiceUC, deps.PDFUC)
	patients.Post("/", RequireRole(entity.RoleAdmin, entity.RoleDoctor), patientHandler.Create)
	patients.Get("/", patientHandler.List)
	patients.Delete("/:id", RequireRole(entity.RoleAdmin), patientHandler.Delete)
	patients.Get("/:id/invoices", patientHandler.ListInvoices)
	patients.Get("/:id/invoices/:minute", patientHandler.InvoiceDetail)
	patients.Get("/:id/invoices/:minute/pdf", patientHandler.InvoicePDF)
}
