package domain

import (
	"fmt"
	"time"
)

// Channel enumerates outbound communication channels.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsapp Channel = "whatsapp"
)

// ParseChannel validates a channel string.
func ParseChannel(s string) (Channel, error) {
	channel := Channel(s)
	if !channel.Valid() {
		return "", fmt.Errorf("unknown channel: %q", s)
	}
	return channel, nil
}

// Valid reports membership in the channel enumeration.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelWhatsapp:
		return true
	}
	return false
}

// Communication is a logged outbound message. Individual sends carry
// CustomerID; group and all-customer sends carry CustomerIDs with IsBulk set.
// Delivery itself happens outside this system; Status records intent only.
type Communication struct {
	ID          string
	CustomerID  *string
	CustomerIDs []string
	Channel     Channel
	Subject     string
	Message     string
	Status      string
	SentToGroup *string
	IsBulk      bool
	CreatedAt   time.Time
}

// MessageTemplate is a reusable compose preset. Channel "all" means the
// template applies to any channel.
type MessageTemplate struct {
	ID        string
	Name      string
	Subject   string
	Message   string
	Channel   string
	CreatedAt time.Time
}
