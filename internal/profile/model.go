package profile

import "time"

type Profile struct {
	ID          int       `json:"id"`
	FirstName   string    `json:"firstName"`
	MiddleName  string    `json:"middleName"`
	TopicID     int       `json:"topicId"`
	BirthDate   time.Time `json:"birthDate"`
	CreatedDate time.Time `json:"createdDate"`
}
