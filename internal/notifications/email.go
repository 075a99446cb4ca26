// Package notifications generates email payloads for lifecycle events.
// Generation is pure: delivery is handed off to an external webhook and is
// out of scope here.
package notifications

import (
	"fmt"
	"html"
	"time"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
)

// Template names, used as metric labels and payload discriminators
const (
	TemplateRequestReceived  = "request_received"
	TemplateRequestApproved  = "request_approved"
	TemplateRequestDeclined  = "request_declined"
	TemplateRequestExpired   = "request_expired"
	TemplateMeetingScheduled = "meeting_scheduled"
)

// EmailPayload is the rendered notification handed to the delivery webhook
type EmailPayload struct {
	Template string `json:"template"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTML     string `json:"html"`
	Text     string `json:"text"`
}

// RequestReceived renders the notification sent to a mentor when a mentee
// submits a new mentorship request.
func RequestReceived(mentorEmail string, mentor *models.Mentor, req *models.MentorshipRequest) EmailPayload {
	subject := fmt.Sprintf("New mentorship request from %s", req.MenteeName)

	text := fmt.Sprintf(
		"Hi %s,\n\n%s has requested mentorship with you on Diaspora Bridge.\n\n"+
			"Their message:\n%s\n\n"+
			"This request expires on %s. Please approve or decline it from your dashboard.\n",
		mentor.Name, req.MenteeName, req.Message,
		req.ExpiresAt.Format(time.RFC1123),
	)

	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p><strong>%s</strong> has requested mentorship with you on Diaspora Bridge.</p>"+
			"<blockquote>%s</blockquote>"+
			"<p>This request expires on <strong>%s</strong>. Please approve or decline it from your dashboard.</p>",
		html.EscapeString(mentor.Name),
		html.EscapeString(req.MenteeName),
		html.EscapeString(req.Message),
		req.ExpiresAt.Format(time.RFC1123),
	)

	return EmailPayload{
		Template: TemplateRequestReceived,
		To:       mentorEmail,
		Subject:  subject,
		HTML:     htmlBody,
		Text:     text,
	}
}

// RequestApproved renders the notification sent to a mentee when their
// request is approved and a conversation opens.
func RequestApproved(req *models.MentorshipRequest, mentor *models.Mentor, conversationURL string) EmailPayload {
	subject := fmt.Sprintf("%s accepted your mentorship request", mentor.Name)

	text := fmt.Sprintf(
		"Hi %s,\n\nGreat news: %s (%s at %s) accepted your mentorship request.\n\n"+
			"Your conversation is now open: %s\n\n"+
			"Introduce yourself and share what you would like to get out of the mentorship.\n",
		req.MenteeName, mentor.Name, mentor.Title, mentor.Company, conversationURL,
	)

	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Great news: <strong>%s</strong> (%s at %s) accepted your mentorship request.</p>"+
			"<p><a href=\"%s\">Open your conversation</a> and introduce yourself.</p>",
		html.EscapeString(req.MenteeName),
		html.EscapeString(mentor.Name),
		html.EscapeString(mentor.Title),
		html.EscapeString(mentor.Company),
		conversationURL,
	)

	return EmailPayload{
		Template: TemplateRequestApproved,
		To:       req.MenteeEmail,
		Subject:  subject,
		HTML:     htmlBody,
		Text:     text,
	}
}

// RequestDeclined renders the notification sent to a mentee when their
// request is declined.
func RequestDeclined(req *models.MentorshipRequest, mentor *models.Mentor) EmailPayload {
	subject := "Update on your mentorship request"

	text := fmt.Sprintf(
		"Hi %s,\n\n%s is unable to take on your mentorship request at this time.\n\n"+
			"Don't be discouraged - browse the directory for other mentors in your field.\n",
		req.MenteeName, mentor.Name,
	)

	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p><strong>%s</strong> is unable to take on your mentorship request at this time.</p>"+
			"<p>Don't be discouraged - browse the directory for other mentors in your field.</p>",
		html.EscapeString(req.MenteeName),
		html.EscapeString(mentor.Name),
	)

	return EmailPayload{
		Template: TemplateRequestDeclined,
		To:       req.MenteeEmail,
		Subject:  subject,
		HTML:     htmlBody,
		Text:     text,
	}
}

// RequestExpired renders the notification sent to a mentee when their
// request lapses without a mentor response.
func RequestExpired(req *models.MentorshipRequest, mentorName string) EmailPayload {
	subject := "Your mentorship request has expired"

	text := fmt.Sprintf(
		"Hi %s,\n\nYour mentorship request to %s expired without a response.\n\n"+
			"You're welcome to request another mentor from the directory.\n",
		req.MenteeName, mentorName,
	)

	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Your mentorship request to <strong>%s</strong> expired without a response.</p>"+
			"<p>You're welcome to request another mentor from the directory.</p>",
		html.EscapeString(req.MenteeName),
		html.EscapeString(mentorName),
	)

	return EmailPayload{
		Template: TemplateRequestExpired,
		To:       req.MenteeEmail,
		Subject:  subject,
		HTML:     htmlBody,
		Text:     text,
	}
}

// MeetingScheduled renders the notification sent to a mentee when their
// mentor schedules a meeting.
func MeetingScheduled(menteeEmail, menteeName, mentorName string, meeting *models.Meeting) EmailPayload {
	subject := fmt.Sprintf("%s scheduled a meeting: %s", mentorName, meeting.Title)

	when := meeting.ScheduledAt.Format(time.RFC1123)

	text := fmt.Sprintf(
		"Hi %s,\n\n%s scheduled a %s meeting with you.\n\n"+
			"Title: %s\nWhen: %s\nDuration: %d minutes\n",
		menteeName, mentorName, meeting.Type, meeting.Title, when, meeting.DurationMinutes,
	)

	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p><strong>%s</strong> scheduled a %s meeting with you.</p>"+
			"<ul><li>Title: %s</li><li>When: %s</li><li>Duration: %d minutes</li></ul>",
		html.EscapeString(menteeName),
		html.EscapeString(mentorName),
		meeting.Type,
		html.EscapeString(meeting.Title),
		when,
		meeting.DurationMinutes,
	)

	return EmailPayload{
		Template: TemplateMeetingScheduled,
		To:       menteeEmail,
		Subject:  subject,
		HTML:     htmlBody,
		Text:     text,
	}
}
