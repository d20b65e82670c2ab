package gmailclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"google.golang.org/api/gmail/v1"

	"github.com/sportsync/refassign/pkg/db"
)

// Minimum interval between sends, respecting Gmail API rate limits
const emailInterval = 3 * time.Second

// NotifyAssignment emails a referee that a suggestion naming them was
// accepted into an assignment. Implements the suggestion service's
// Notifier interface.
func (c *Client) NotifyAssignment(ctx context.Context, referee *db.Referee, game *db.Game, assignment *db.Assignment) error {
	if referee.Email == "" {
		return fmt.Errorf("referee %s has no email address", referee.ID)
	}

	subject := fmt.Sprintf("New game assignment: %s at %s", game.Date, game.StartTime)
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"You have been assigned to officiate a game.\n\n"+
			"Date:     %s\n"+
			"Time:     %s\n"+
			"Location: %s\n"+
			"Level:    %s\n"+
			"Position: %s\n"+
			"Wage:     $%.2f\n\n"+
			"Please confirm or decline this assignment in the league portal.\n",
		referee.Name, game.Date, game.StartTime, game.Location, game.Level,
		assignment.Position, assignment.CalculatedWage)

	return c.send(referee.Email, subject, body)
}

// send delivers an email, throttling requests to one per emailInterval
func (c *Client) send(to, subject, body string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if !c.lastSendTime.IsZero() {
		if elapsed := time.Since(c.lastSendTime); elapsed < emailInterval {
			time.Sleep(emailInterval - elapsed)
		}
	}

	headers := fmt.Sprintf("To: %s\r\n", to)
	if c.sender != "" {
		headers += fmt.Sprintf("From: %s\r\n", c.sender)
	}
	message := fmt.Sprintf("%sSubject: %s\r\n\r\n%s", headers, subject, body)

	gmailMessage := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(message)),
	}

	if _, err := c.service.Users.Messages.Send("me", gmailMessage).Do(); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.lastSendTime = time.Now()
	return nil
}
