package main

import (
	"fmt"
	"log"
	"time"

	"tourly/internal/shared/config"
	"tourly/internal/shared/database"
	"tourly/internal/tours"
	"tourly/internal/users"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Tourly database seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"payments",
		"bookings",
		"tour_dates",
		"tours",
		"users",
	}

	gdb := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := gdb.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	organizer, participants, err := s.seedUsers()
	if err != nil {
		return err
	}

	if err := s.seedTours(organizer, participants); err != nil {
		return err
	}

	return nil
}

func (s *Seeder) seedUsers() (*users.User, []users.User, error) {
	gdb := s.db.GetPostgreSQL()

	password, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	organizer := users.User{
		ID:           uuid.New(),
		Name:         "Дмитрий Соколов",
		Email:        "dmitry@example.com",
		Password:     string(password),
		Avatar:       "https://images.pexels.com/photos/91227/pexels-photo-91227.jpeg?auto=compress&cs=tinysrgb&w=150",
		Bio:          "Опытный гид-проводник, организую туры по Алтаю более 8 лет",
		Location:     "Барнаул",
		Rating:       4.9,
		ReviewsCount: 127,
		Verified:     true,
		JoinedAt:     time.Date(2021, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	participants := []users.User{
		{
			ID:           uuid.New(),
			Name:         "Анна Петрова",
			Email:        "anna@example.com",
			Password:     string(password),
			Avatar:       "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg?auto=compress&cs=tinysrgb&w=150",
			Rating:       4.8,
			ReviewsCount: 23,
			Location:     "Москва",
			JoinedAt:     time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
			Verified:     true,
		},
		{
			ID:           uuid.New(),
			Name:         "Михаил Иванов",
			Email:        "michael@example.com",
			Password:     string(password),
			Avatar:       "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=150",
			Rating:       4.6,
			ReviewsCount: 18,
			Location:     "Санкт-Петербург",
			JoinedAt:     time.Date(2022, 8, 22, 0, 0, 0, 0, time.UTC),
			Verified:     true,
		},
	}

	if err := gdb.Create(&organizer).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create organizer: %w", err)
	}
	if err := gdb.Create(&participants).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create participants: %w", err)
	}

	fmt.Printf("  seeded %d users\n", 1+len(participants))
	return &organizer, participants, nil
}

func (s *Seeder) seedTours(organizer *users.User, participants []users.User) error {
	gdb := s.db.GetPostgreSQL()

	tourIncludes := []string{
		"Проживание в указанных местах",
		"Трансфер по программе",
		"Услуги гида-проводника",
		"Входные билеты в музеи",
		"Страховка от несчастных случаев",
	}
	tourExcludes := []string{
		"Авиабилеты до места начала тура",
		"Личные расходы",
		"Дополнительные экскурсии",
		"Алкогольные напитки",
		"Чаевые",
	}

	now := time.Now()

	altai := tours.Tour{
		ID:           uuid.New(),
		Title:        "Поход по Горному Алтаю",
		Description:  "Недельный маршрут через долину Чулышмана и Телецкое озеро в небольшой группе.",
		Destination:  "Горный Алтай",
		BasePrice:    4500000, // 45 000 ₽ in kopecks
		Currency:     "RUB",
		MaxGroupSize: 12,
		Difficulty:   tours.DifficultyMedium,
		Meals:        true,
		Images: []string{
			"https://images.pexels.com/photos/1271619/pexels-photo-1271619.jpeg",
			"https://images.pexels.com/photos/933054/pexels-photo-933054.jpeg",
		},
		Tags:          []string{"горы", "треккинг", "природа"},
		Transport:     []string{"Микроавтобус", "Пешком"},
		Accommodation: []string{"Палатки", "Турбаза"},
		Includes:      tourIncludes,
		Excludes:      tourExcludes,
		OrganizerID:   organizer.ID,
		Dates: []tours.TourDate{
			{
				ID:                  uuid.New(),
				StartDate:           now.AddDate(0, 1, 0),
				EndDate:             now.AddDate(0, 1, 7),
				MaxParticipants:     10,
				CurrentParticipants: 8,
				Price:               4500000,
				Status:              tours.DateStatusAvailable,
			},
			{
				ID:                  uuid.New(),
				StartDate:           now.AddDate(0, 2, 0),
				EndDate:             now.AddDate(0, 2, 7),
				MaxParticipants:     12,
				CurrentParticipants: 2,
				Price:               4800000,
				Status:              tours.DateStatusAvailable,
			},
			{
				ID:                  uuid.New(),
				StartDate:           now.AddDate(0, 3, 0),
				EndDate:             now.AddDate(0, 3, 7),
				MaxParticipants:     10,
				CurrentParticipants: 10,
				Price:               4500000,
				Status:              tours.DateStatusFull,
			},
		},
	}

	baikal := tours.Tour{
		ID:           uuid.New(),
		Title:        "Зимний Байкал",
		Description:  "Лёд Байкала, остров Ольхон и бурятская кухня за пять дней.",
		Destination:  "Байкал",
		BasePrice:    3800000,
		Currency:     "RUB",
		MaxGroupSize: 8,
		Difficulty:   tours.DifficultyEasy,
		Meals:        false,
		Images: []string{
			"https://images.pexels.com/photos/2166711/pexels-photo-2166711.jpeg",
		},
		Tags:          []string{"зима", "озеро", "фототур"},
		Transport:     []string{"Поезд", "УАЗ"},
		Accommodation: []string{"Гостевой дом"},
		Includes:      tourIncludes,
		Excludes:      tourExcludes,
		OrganizerID:   organizer.ID,
		Dates: []tours.TourDate{
			{
				ID:                  uuid.New(),
				StartDate:           now.AddDate(0, 5, 0),
				EndDate:             now.AddDate(0, 5, 5),
				MaxParticipants:     8,
				CurrentParticipants: 3,
				Price:               3800000,
				Status:              tours.DateStatusAvailable,
			},
			{
				ID:                  uuid.New(),
				StartDate:           now.AddDate(0, 6, 0),
				EndDate:             now.AddDate(0, 6, 5),
				MaxParticipants:     8,
				CurrentParticipants: 0,
				Price:               3800000,
				Status:              tours.DateStatusCancelled,
			},
		},
	}

	for _, tour := range []tours.Tour{altai, baikal} {
		if err := gdb.Create(&tour).Error; err != nil {
			return fmt.Errorf("failed to create tour %q: %w", tour.Title, err)
		}
	}

	fmt.Println("  seeded 2 tours with departures")
	return nil
}
