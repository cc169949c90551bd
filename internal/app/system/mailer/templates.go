// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/dalemusser/studyhub/internal/app/system/htmlsanitize"
)

// GroupNotificationData holds data for the admin-to-group notification email.
type GroupNotificationData struct {
	GroupTitle string
	Subject    string
	Message    string // plain text; newlines become line breaks in HTML
}

// BuildGroupNotification creates a group notification with both HTML and text
// bodies. To is left empty for the caller to set per recipient.
func BuildGroupNotification(data GroupNotificationData) Email {
	return Email{
		To:       "",
		Subject:  "[Study Group] " + data.Subject,
		TextBody: buildGroupNotificationText(data),
		HTMLBody: buildGroupNotificationHTML(data),
	}
}

func buildGroupNotificationText(data GroupNotificationData) string {
	var buf bytes.Buffer
	buf.WriteString("Study Group Notification\n\n")
	buf.WriteString(fmt.Sprintf("Group: %s\n\n", data.GroupTitle))
	buf.WriteString(data.Message + "\n\n")
	buf.WriteString("This email was sent by the administrator of your study group.\n")
	return buf.String()
}

var groupNotificationTmpl = template.Must(template.New("group_notification").Parse(groupNotificationHTMLTemplate))

func buildGroupNotificationHTML(data GroupNotificationData) string {
	var buf bytes.Buffer
	_ = groupNotificationTmpl.Execute(&buf, struct {
		GroupTitle string
		Body       template.HTML
	}{
		GroupTitle: data.GroupTitle,
		Body:       htmlsanitize.PlainToHTML(data.Message),
	})
	return buf.String()
}

const groupNotificationHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Study Group Notification</title>
</head>
<body style="margin: 0; padding: 0;">
  <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #1976d2;">Study Group Notification</h2>
    <h3 style="color: #333;">Group: {{.GroupTitle}}</h3>
    <div style="background-color: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <p style="font-size: 16px; line-height: 1.6; color: #555;">{{.Body}}</p>
    </div>
    <p style="color: #666; font-size: 14px;">
      This email was sent by the administrator of your study group.
    </p>
    <hr style="border: 1px solid #eee; margin: 20px 0;">
    <p style="color: #999; font-size: 12px;">StudyHub Notification System</p>
  </div>
</body>
</html>
`
