package api

// Wire types mirror the service's JSON exactly. Fields the UI does not use
// (reminder_sent, recurring_type) are still decoded so payloads round-trip.

// Task is a task as the service serializes it.
type Task struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	Title            string  `json:"title"`
	Description      *string `json:"description"`
	Status           string  `json:"status"`
	Priority         string  `json:"priority"`
	DueDate          *string `json:"due_date"`
	ReminderSent     bool    `json:"reminder_sent"`
	RecurringType    string  `json:"recurring_type"`
	RecurringEndDate *string `json:"recurring_end_date"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
	Tags             []Tag   `json:"tags"`
}

// Tag is a tag as the service serializes it.
type Tag struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"created_at"`
}

// User is the account record returned by the auth endpoints.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// TaskCreate is the creation payload.
type TaskCreate struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	TagIDs      []string `json:"tag_ids,omitempty"`
}

// TaskUpdate is a partial update; nil fields are omitted from the payload.
type TaskUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	TagIDs      *[]string `json:"tag_ids,omitempty"`
}

// TagCreate is the tag creation payload.
type TagCreate struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// TagUpdate is a partial tag update.
type TagUpdate struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and account record.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// ChatRequest sends one message to the assistant.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
}

// ChatMessage is one stored message in the conversation history.
type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ChatHistory is the stored conversation for a user.
type ChatHistory struct {
	Messages  []ChatMessage `json:"messages"`
	SessionID string        `json:"session_id"`
}
