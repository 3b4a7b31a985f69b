package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// ─── Models ──────────────────────────────────────────────────────────────────

type Search struct {
	ID            string    `json:"id"`
	FromAirport   string    `json:"from_airport"`
	ToAirport     string    `json:"to_airport"`
	DepartureDate string    `json:"departure_date"`
	ReturnDate    string    `json:"return_date"`
	Passengers    int       `json:"passengers"`
	FlightClass   string    `json:"flight_class"`
	TripType      string    `json:"trip_type"`
	CreatedAt     time.Time `json:"created_at"`
}

// Booking embeds the selected offer as opaque JSON; this layer never
// interprets it. The payment gateway fills payment_ref after capture.
type Booking struct {
	ID            string    `json:"id"`
	SearchID      string    `json:"search_id"`
	OfferJSON     string    `json:"offer_json"`
	PassengerName string    `json:"passenger_name"`
	Email         string    `json:"email"`
	Passengers    int       `json:"passengers"`
	ServiceFee    float64   `json:"service_fee"`
	PaymentRef    string    `json:"payment_ref"`
	PDFData       []byte    `json:"pdf_data,omitempty"` // stored in DB, no filesystem needed
	CreatedAt     time.Time `json:"created_at"`
}

// ─── Init ─────────────────────────────────────────────────────────────────────

func InitDB() {
	dsn := buildDSN()

	var err error
	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// Retry connection up to 10 times (the managed DB may take a moment)
	for i := 0; i < 10; i++ {
		if err = DB.Ping(); err == nil {
			break
		}
		log.Printf("⏳ Waiting for database... attempt %d/10: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("❌ Failed to connect to database after retries: %v", err)
	}

	migrate()
	log.Println("✅ Database connected and migrated")
}

// Ready reports whether the store has been initialized. Handlers degrade to
// stateless operation without it (search still works, booking does not).
func Ready() bool {
	return DB != nil
}

func buildDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	pass := getEnv("DB_PASSWORD", "postgres")
	name := getEnv("DB_NAME", "skyfare")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, sslmode)
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func migrate() {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id             TEXT PRIMARY KEY,
			from_airport   TEXT NOT NULL,
			to_airport     TEXT NOT NULL,
			departure_date TEXT NOT NULL,
			return_date    TEXT,
			passengers     INTEGER DEFAULT 1,
			flight_class   TEXT,
			trip_type      TEXT,
			created_at     TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id             TEXT PRIMARY KEY,
			search_id      TEXT REFERENCES searches(id),
			offer_json     TEXT NOT NULL,
			passenger_name TEXT NOT NULL,
			email          TEXT,
			passengers     INTEGER DEFAULT 1,
			service_fee    NUMERIC(12,2) NOT NULL,
			payment_ref    TEXT,
			pdf_data       BYTEA,
			created_at     TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_bookings_search_id
			ON bookings(search_id)`,

		`CREATE INDEX IF NOT EXISTS idx_searches_created_at
			ON searches(created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := DB.Exec(m); err != nil {
			log.Fatalf("❌ Migration failed: %v\nSQL: %s", err, m)
		}
	}
}

// ─── CRUD ─────────────────────────────────────────────────────────────────────

func SaveSearch(s *Search) error {
	_, err := DB.Exec(`
		INSERT INTO searches (id, from_airport, to_airport, departure_date, return_date, passengers, flight_class, trip_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.FromAirport, s.ToAirport, s.DepartureDate, s.ReturnDate, s.Passengers, s.FlightClass, s.TripType)
	return err
}

func GetSearch(id string) (*Search, error) {
	s := &Search{}
	err := DB.QueryRow(`
		SELECT id, from_airport, to_airport, departure_date, return_date, passengers, flight_class, trip_type, created_at
		FROM searches WHERE id = $1`, id).
		Scan(&s.ID, &s.FromAirport, &s.ToAirport, &s.DepartureDate, &s.ReturnDate,
			&s.Passengers, &s.FlightClass, &s.TripType, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func SaveBooking(b *Booking) error {
	_, err := DB.Exec(`
		INSERT INTO bookings (id, search_id, offer_json, passenger_name, email, passengers, service_fee, payment_ref, pdf_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, nullable(b.SearchID), b.OfferJSON, b.PassengerName, b.Email, b.Passengers, b.ServiceFee, b.PaymentRef, b.PDFData)
	return err
}

func GetBooking(id string) (*Booking, error) {
	b := &Booking{}
	var searchID sql.NullString
	err := DB.QueryRow(`
		SELECT id, search_id, offer_json, passenger_name, email, passengers, service_fee, COALESCE(payment_ref, ''), pdf_data, created_at
		FROM bookings WHERE id = $1`, id).
		Scan(&b.ID, &searchID, &b.OfferJSON, &b.PassengerName, &b.Email,
			&b.Passengers, &b.ServiceFee, &b.PaymentRef, &b.PDFData, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.SearchID = searchID.String
	return b, nil
}

func UpdateBookingPayment(id, paymentRef string) error {
	_, err := DB.Exec(`
		UPDATE bookings SET payment_ref = $1 WHERE id = $2`,
		paymentRef, id)
	return err
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
