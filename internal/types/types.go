// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"slices"
	"time"
)

type AccountKind string

const (
	KindStudent AccountKind = "student"
	// KindSchool is the school administrator; its account id is the school id.
	KindSchool AccountKind = "school"
)

func (k AccountKind) Valid() bool {
	return k == KindStudent || k == KindSchool
}

// Cohorts are the four houses students compete in on the leaderboard.
var Cohorts = []string{"Red", "Blue", "Green", "Yellow"}

func ValidCohort(c string) bool {
	return c == "" || slices.Contains(Cohorts, c)
}

type School struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	JoinCode  string    `json:"joinCode" db:"join_code"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Account struct {
	ID              string      `json:"id" db:"id"`
	TenantID        string      `json:"schoolId" db:"tenant_id"`
	Name            string      `json:"name" db:"name"`
	Email           string      `json:"email" db:"email"`
	PasswordHash    string      `json:"-" db:"password_hash"`
	Kind            AccountKind `json:"role" db:"kind"`
	Points          int         `json:"points" db:"points"`
	Cohort          string      `json:"house,omitempty" db:"cohort"`
	Suspended       bool        `json:"suspended" db:"suspended"`
	JoinedClubIDs   []string    `json:"clubsJoined"`
	UnlockedNoteIDs []string    `json:"unlockedNotes"`
	CreatedAt       time.Time   `json:"createdAt" db:"created_at"`
}

type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Listing struct {
	ID          string    `json:"id" db:"id"`
	TenantID    string    `json:"schoolId" db:"tenant_id"`
	OwnerID     string    `json:"sellerId" db:"owner_id"`
	OwnerName   string    `json:"sellerName,omitempty"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       int       `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	Condition   string    `json:"condition" db:"condition"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type Note struct {
	ID           string    `json:"id" db:"id"`
	TenantID     string    `json:"schoolId" db:"tenant_id"`
	AuthorID     string    `json:"authorId" db:"author_id"`
	AuthorName   string    `json:"authorName,omitempty"`
	Title        string    `json:"title" db:"title"`
	Subject      string    `json:"subject" db:"subject"`
	ContentURL   string    `json:"pdfUrl" db:"content_url"`
	Price        int       `json:"price" db:"price"`
	PurchaserIDs []string  `json:"purchasers"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// Purchase is the outcome of unlocking a note.
type Purchase struct {
	NoteID          string `json:"noteId"`
	Price           int    `json:"price"`
	RemainingPoints int    `json:"remainingPoints"`
}

type Club struct {
	ID          string    `json:"id" db:"id"`
	TenantID    string    `json:"schoolId" db:"tenant_id"`
	FounderID   string    `json:"createdBy" db:"founder_id"`
	FounderName string    `json:"createdByName,omitempty"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	MemberIDs   []string  `json:"memberIds"`
	Members     []Member  `json:"members,omitempty"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

func (c *Club) HasMember(accountID string) bool {
	return slices.Contains(c.MemberIDs, accountID)
}

type ClubPost struct {
	ID         string    `json:"id" db:"id"`
	ClubID     string    `json:"clubId" db:"club_id"`
	TenantID   string    `json:"schoolId" db:"tenant_id"`
	AuthorID   string    `json:"senderId" db:"author_id"`
	AuthorName string    `json:"senderName,omitempty"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type VoteDirection string

const (
	VoteNone VoteDirection = ""
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

type Confession struct {
	ID        string        `json:"id" db:"id"`
	TenantID  string        `json:"schoolId" db:"tenant_id"`
	Content   string        `json:"content" db:"content"`
	Upvotes   int           `json:"upvotes"`
	Downvotes int           `json:"downvotes"`
	VoteScore int           `json:"voteScore"`
	MyVote    VoteDirection `json:"myVote,omitempty"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
}

type PollOption struct {
	Index     int    `json:"index" db:"position"`
	Text      string `json:"text" db:"text"`
	VoteCount int    `json:"votes" db:"vote_count"`
}

type Poll struct {
	ID              string       `json:"id" db:"id"`
	TenantID        string       `json:"schoolId" db:"tenant_id"`
	CreatorID       string       `json:"createdBy" db:"creator_id"`
	CreatorName     string       `json:"createdByName,omitempty"`
	Question        string       `json:"question" db:"question"`
	Options         []PollOption `json:"options"`
	VotedAccountIDs []string     `json:"votedUsers"`
	ExpiresAt       time.Time    `json:"expiresAt" db:"expires_at"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
}

// IsOpen reports whether votes are accepted at now.
func (p *Poll) IsOpen(now time.Time) bool {
	return now.Before(p.ExpiresAt)
}

type NotificationKind string

const (
	NotificationSystem NotificationKind = "system"
	NotificationClub   NotificationKind = "club"
	NotificationPoll   NotificationKind = "poll"
	NotificationMarket NotificationKind = "market"
)

type Notification struct {
	ID          string           `json:"id" db:"id"`
	TenantID    string           `json:"schoolId" db:"tenant_id"`
	RecipientID string           `json:"userId,omitempty" db:"recipient_id"`
	Message     string           `json:"message" db:"message"`
	Kind        NotificationKind `json:"type" db:"kind"`
	Read        bool             `json:"isRead" db:"read"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}

// IsBroadcast reports whether the notification targets the whole school.
func (n *Notification) IsBroadcast() bool {
	return n.RecipientID == ""
}

type Conversation struct {
	ID             string    `json:"id" db:"id"`
	TenantID       string    `json:"schoolId" db:"tenant_id"`
	ParticipantIDs []string  `json:"participants"`
	Participants   []Member  `json:"participantDetails,omitempty"`
	LastMessage    string    `json:"lastMessage" db:"last_message"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

func (c *Conversation) HasParticipant(accountID string) bool {
	return slices.Contains(c.ParticipantIDs, accountID)
}

type Message struct {
	ID             string    `json:"id" db:"id"`
	ConversationID string    `json:"conversationId" db:"conversation_id"`
	SenderID       string    `json:"sender" db:"sender_id"`
	SenderName     string    `json:"senderName,omitempty"`
	Content        string    `json:"content" db:"content"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

type LeaderboardEntry struct {
	Cohort      string `json:"house"`
	TotalPoints int    `json:"totalPoints"`
	MemberCount int    `json:"studentCount"`
}

type AdminStats struct {
	TotalStudents    int `json:"totalStudents"`
	ActiveClubs      int `json:"activeClubs"`
	TotalItems       int `json:"totalItems"`
	ConfessionsToday int `json:"confessionsToday"`
}
