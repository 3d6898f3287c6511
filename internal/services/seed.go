package services

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"fitstream/internal/models"
	"fitstream/internal/repositories"
)

func timePtr(t time.Time) *time.Time { return &t }

// SeedDefaults populates the three access roles, the default plan
// tiers and a set of sample classes. Roles are created individually if
// missing; plans and classes are only seeded when their tables are
// completely empty.
func SeedDefaults(ctx context.Context, db *gorm.DB) error {
	if err := seedRoles(ctx, db); err != nil {
		return err
	}

	uow := repositories.NewUnitOfWork(db)

	planCount, err := uow.SubscriptionPlans().Count(ctx)
	if err != nil {
		return err
	}
	if planCount == 0 {
		for _, plan := range defaultPlans() {
			p := plan
			uow.SubscriptionPlans().Add(&p)
		}
		if err := uow.SaveChanges(ctx); err != nil {
			return err
		}
		log.Println("Seeded default subscription plans")
	}

	classCount, err := uow.FitnessClasses().Count(ctx)
	if err != nil {
		return err
	}
	if classCount == 0 {
		for _, class := range sampleClasses() {
			c := class
			uow.FitnessClasses().Add(&c)
		}
		if err := uow.SaveChanges(ctx); err != nil {
			return err
		}
		log.Println("Seeded sample fitness classes")
	}

	return nil
}

func seedRoles(ctx context.Context, db *gorm.DB) error {
	for _, name := range []models.UserRole{models.RoleAdmin, models.RoleInstructor, models.RoleUser} {
		var existing models.Role
		err := db.WithContext(ctx).Where("name = ?", string(name)).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.WithContext(ctx).Create(&models.Role{Name: string(name)}).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func defaultPlans() []models.SubscriptionPlan {
	return []models.SubscriptionPlan{
		{
			Name:                     "Basic",
			Description:              "Access to recorded classes and basic features",
			Price:                    499,
			DurationInDays:           30,
			MaxClassBookingsPerMonth: 10,
			IncludesLiveClasses:      false,
			IncludesRecordedClasses:  true,
			IsActive:                 true,
		},
		{
			Name:                     "Premium",
			Description:              "Unlimited access to live and recorded classes",
			Price:                    999,
			DurationInDays:           30,
			MaxClassBookingsPerMonth: 0, // Unlimited
			IncludesLiveClasses:      true,
			IncludesRecordedClasses:  true,
			IsActive:                 true,
		},
		{
			Name:                     "Pro",
			Description:              "Premium features plus personal training sessions",
			Price:                    1499,
			DurationInDays:           30,
			MaxClassBookingsPerMonth: 0, // Unlimited
			IncludesLiveClasses:      true,
			IncludesRecordedClasses:  true,
			IsActive:                 true,
		},
	}
}

func sampleClasses() []models.FitnessClass {
	now := time.Now().UTC()
	return []models.FitnessClass{
		{
			Title:           "Morning HIIT Blast",
			Description:     "High-intensity interval training to kickstart your day with energy and burn maximum calories.",
			ClassType:       models.ClassTypeLive,
			Category:        models.CategoryHIIT,
			Difficulty:      models.DifficultyIntermediate,
			DurationMinutes: 45,
			MaxParticipants: 30,
			ScheduledAt:     timePtr(now.AddDate(0, 0, 1).Add(7 * time.Hour)),
			InstructorName:  "Coach Mike",
		},
		{
			Title:           "Yoga Flow & Relaxation",
			Description:     "A calming yoga session focusing on flexibility, balance, and mindfulness meditation.",
			ClassType:       models.ClassTypeLive,
			Category:        models.CategoryYoga,
			Difficulty:      models.DifficultyAllLevels,
			DurationMinutes: 60,
			MaxParticipants: 25,
			ScheduledAt:     timePtr(now.AddDate(0, 0, 1).Add(9 * time.Hour)),
			InstructorName:  "Sarah Chen",
		},
		{
			Title:           "Power Strength Training",
			Description:     "Build muscle and increase strength with targeted weight training exercises.",
			ClassType:       models.ClassTypeLive,
			Category:        models.CategoryStrength,
			Difficulty:      models.DifficultyIntermediate,
			DurationMinutes: 50,
			MaxParticipants: 20,
			ScheduledAt:     timePtr(now.AddDate(0, 0, 2).Add(18 * time.Hour)),
			InstructorName:  "Coach Marcus",
		},
		{
			Title:           "Cardio Dance Party",
			Description:     "Fun dance workout that doesn't feel like exercise! Great music, great moves, great results.",
			ClassType:       models.ClassTypeRecorded,
			Category:        models.CategoryDance,
			Difficulty:      models.DifficultyBeginner,
			DurationMinutes: 45,
			MaxParticipants: 40,
			VideoURL:        "https://media.fitstream.example.com/classes/cardio-dance-party.mp4",
			InstructorName:  "Jessica Taylor",
		},
		{
			Title:           "Core Pilates Foundations",
			Description:     "Strengthen your core and improve posture with fundamental pilates exercises.",
			ClassType:       models.ClassTypeLive,
			Category:        models.CategoryPilates,
			Difficulty:      models.DifficultyBeginner,
			DurationMinutes: 40,
			MaxParticipants: 20,
			ScheduledAt:     timePtr(now.AddDate(0, 0, 3).Add(10 * time.Hour)),
			InstructorName:  "Emma Wilson",
		},
		{
			Title:           "Spin Cycle Challenge",
			Description:     "High-energy indoor cycling class with hill climbs, sprints, and endurance training.",
			ClassType:       models.ClassTypeLive,
			Category:        models.CategoryCycling,
			Difficulty:      models.DifficultyAdvanced,
			DurationMinutes: 45,
			MaxParticipants: 25,
			ScheduledAt:     timePtr(now.AddDate(0, 0, 3).Add(17 * time.Hour)),
			InstructorName:  "Coach David",
		},
		{
			Title:           "Beginner's Full Body Workout",
			Description:     "Perfect for fitness newcomers. Learn proper form and build a solid foundation.",
			ClassType:       models.ClassTypeRecorded,
			Category:        models.CategoryStrength,
			Difficulty:      models.DifficultyBeginner,
			DurationMinutes: 35,
			MaxParticipants: 15,
			VideoURL:        "https://media.fitstream.example.com/classes/beginners-full-body.mp4",
			InstructorName:  "Lisa Johnson",
		},
		{
			Title:           "Advanced Boxing Conditioning",
			Description:     "Boxing-inspired workout combining cardio, strength, and agility training.",
			ClassType:       models.ClassTypeLive,
			Category:        models.CategoryBoxing,
			Difficulty:      models.DifficultyAdvanced,
			DurationMinutes: 55,
			MaxParticipants: 20,
			ScheduledAt:     timePtr(now.AddDate(0, 0, 5).Add(19 * time.Hour)),
			InstructorName:  "Coach Tony",
		},
	}
}
