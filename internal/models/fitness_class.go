package models

import "time"

// ClassType distinguishes scheduled live sessions from the on-demand library
type ClassType string

const (
	ClassTypeLive     ClassType = "Live"
	ClassTypeRecorded ClassType = "Recorded"
)

// ClassCategory groups classes for browsing
type ClassCategory string

const (
	CategoryHIIT     ClassCategory = "HIIT"
	CategoryYoga     ClassCategory = "Yoga"
	CategoryStrength ClassCategory = "Strength"
	CategoryDance    ClassCategory = "Dance"
	CategoryPilates  ClassCategory = "Pilates"
	CategoryCycling  ClassCategory = "Cycling"
	CategoryBoxing   ClassCategory = "Boxing"
)

// DifficultyLevel rates how demanding a class is
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "Beginner"
	DifficultyIntermediate DifficultyLevel = "Intermediate"
	DifficultyAdvanced     DifficultyLevel = "Advanced"
	DifficultyAllLevels    DifficultyLevel = "AllLevels"
)

// FitnessClass represents a live session or a recorded workout
type FitnessClass struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:varchar(2000)" json:"description"`

	ClassType  ClassType       `gorm:"type:varchar(20);index" json:"class_type"`
	Category   ClassCategory   `gorm:"type:varchar(50);index" json:"category"`
	Difficulty DifficultyLevel `gorm:"type:varchar(20)" json:"difficulty"`

	DurationMinutes int        `json:"duration_minutes"`
	MaxParticipants int        `json:"max_participants"`
	ScheduledAt     *time.Time `gorm:"index" json:"scheduled_at,omitempty"`

	ThumbnailURL string `gorm:"type:varchar(500)" json:"thumbnail_url,omitempty"`
	VideoURL     string `gorm:"type:varchar(500)" json:"video_url,omitempty"`
	StreamURL    string `gorm:"type:varchar(500)" json:"stream_url,omitempty"`
	MeetingID    string `gorm:"type:varchar(100)" json:"meeting_id,omitempty"`

	InstructorID   *uint  `gorm:"index" json:"instructor_id,omitempty"`
	InstructorName string `gorm:"type:varchar(200)" json:"instructor_name,omitempty"`

	// Lowest plan tier that may book this class, nil means any plan
	MinimumPlanID *uint `json:"minimum_plan_id,omitempty"`

	// Relationships
	Instructor  *User             `gorm:"foreignKey:InstructorID;constraint:OnDelete:SET NULL" json:"instructor,omitempty"`
	MinimumPlan *SubscriptionPlan `gorm:"foreignKey:MinimumPlanID;constraint:OnDelete:SET NULL" json:"minimum_plan,omitempty"`
	Bookings    []ClassBooking    `gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
}
