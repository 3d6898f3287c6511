package handlers

import (
	"time"

	"fitstream/internal/models"
)

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type CheckoutRequest struct {
	PlanID uint `json:"plan_id"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
}

type BookingRequest struct {
	ClassID uint `json:"class_id"`
}

type CreateClassRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	ClassType       string     `json:"class_type"`
	Category        string     `json:"category"`
	Difficulty      string     `json:"difficulty"`
	DurationMinutes int        `json:"duration_minutes"`
	MaxParticipants int        `json:"max_participants"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	ThumbnailURL    string     `json:"thumbnail_url,omitempty"`
	VideoURL        string     `json:"video_url,omitempty"`
	StreamURL       string     `json:"stream_url,omitempty"`
	MinimumPlanID   *uint      `json:"minimum_plan_id,omitempty"`
}
