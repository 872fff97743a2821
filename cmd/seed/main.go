package main

import (
	"context"
	"log"

	common_models "github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/common/models"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/config"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/database"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/features/user"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Seed provisions the admin account plus a small fixture set so every report
// endpoint returns data on a fresh database.
func Seed(
	lc fx.Lifecycle,
	userRepo user.UserRepository,
	mongodb *database.MongodbDB,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Starting database seeding...")

				if _, err := userRepo.FindByUsername(ctx, "admin"); err == nil {
					logger.Info("Admin user exists, skipping")
				} else {
					hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
					if err != nil {
						logger.Error("Failed to hash password", zap.Error(err))
						return
					}
					admin := &common_models.User{
						Username: "admin",
						Password: string(hash),
						Email:    "admin@example.com",
						Role:     "admin",
					}
					if err := userRepo.Create(ctx, admin); err != nil {
						logger.Error("Failed to create admin user", zap.Error(err))
						return
					}
					logger.Info("Admin user created")
				}

				customerID := primitive.NewObjectID()
				inventoryID := primitive.NewObjectID()
				deliveryNoteID := primitive.NewObjectID()
				receiveID := primitive.NewObjectID()
				orderID := primitive.NewObjectID()

				fixtures := map[string][]interface{}{
					"customers": {
						bson.M{"_id": customerID, "customerID": "CUST-001", "customer": "customer A", "name": "customer A", "customerWarehouse": "warehouse A"},
					},
					"inventories": {
						bson.M{"_id": inventoryID, "productCode": "P-001", "name": "item A"},
					},
					"deliveryNotes": {
						bson.M{"_id": deliveryNoteID, "warehouse": "warehouse A"},
					},
					"purchaseReceives": {
						bson.M{"_id": receiveID, "noSuratJalan": "SJ-001", "warehouse": "warehouse A"},
					},
					"purchaseOrders": {
						bson.M{"_id": orderID, "purchaseOrderNumber": "PO-001", "vendorName": "supplier A", "vendorNumber": "V-001"},
					},
					"salesInvoices": {
						bson.M{
							"invoice": "INV-001", "invoiceNumber": "INV-001",
							"dateInvoice": "2022-01-10", "invoiceDate": "2022-01-10",
							"item": "item A", "warehouse": "warehouse A",
							"customer": "customer A", "salesman": "salesman A",
							"invoiceAmount": 100.0, "payment": 40.0, "debitMemo": 10.0,
							"total": 100.0, "dpp": 90.0, "ppn": 10.0,
							"deliveryNotesID": deliveryNoteID,
							"customerID":      customerID,
							"inventoryID":     inventoryID,
						},
					},
					"purchaseInvoices": {
						bson.M{
							"noInvoice": "PINV-001", "noBukti": "BK-001",
							"dateInvoice": "2022-02-01", "createDate": "2022-02-01",
							"supplier": "supplier A", "item": "item A", "warehouse": "warehouse A",
							"dpp": 180.0, "ppn": 20.0, "total": 200.0,
							"purchaseReceive_id": receiveID,
							"purchaseReceiveID":  receiveID,
							"purchaseOrderID":    orderID,
						},
					},
					"inventoryReports": {
						bson.M{
							"createdAt": "2022-03-01",
							"item":      "item A", "description": "sample stock",
							"quantityInStock": 10, "unitCost": 5.0,
							"startBalanceCost": 50.0, "receiptsAmount": 25.0,
							"issuesAmount": 15.0, "issuesQuantity": 3,
						},
					},
				}

				for collection, docs := range fixtures {
					count, err := mongodb.DB.Collection(collection).CountDocuments(ctx, bson.M{})
					if err != nil {
						logger.Error("Failed to inspect collection", zap.String("collection", collection), zap.Error(err))
						continue
					}
					if count > 0 {
						logger.Info("Collection already has data, skipping", zap.String("collection", collection))
						continue
					}
					if _, err := mongodb.DB.Collection(collection).InsertMany(ctx, docs); err != nil {
						logger.Error("Failed to seed collection", zap.String("collection", collection), zap.Error(err))
						continue
					}
					logger.Info("Seeded collection", zap.String("collection", collection), zap.Int("documents", len(docs)))
				}

				logger.Info("Database seeding finished")
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			user.NewUserRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	if err := app.Err(); err != nil {
		log.Fatal(err)
	}

	app.Run()
}
