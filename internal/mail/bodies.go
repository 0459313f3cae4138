// internal/mail/bodies.go
//
// Subjects and bodies for the three transactional messages.  HTML
// variants go through html/template so user-entered text (business
// names, deploy errors, visitor messages) renders inert; the plain-text
// variants mirror the same content for clients that prefer it.
package mail

import (
	"bytes"
	htmltmpl "html/template"
	texttmpl "text/template"
	"time"
)

const (
	welcomeSubject = "Your website is live! \U0001F389"
	failureSubject = "Issue with your website deployment"
	contactSubject = "New message from your website"
)

type bodyData struct {
	BusinessName string
	SiteURL      string
	DashboardURL string
	SupportEmail string
	Reason       string

	VisitorName  string
	VisitorEmail string
	VisitorPhone string
	Message      string

	Year int
}

func render(h *htmltmpl.Template, t *texttmpl.Template, d bodyData) (string, string) {
	d.Year = time.Now().Year()
	var hb, tb bytes.Buffer
	// Templates are static and parsed at init; execution over a plain
	// struct cannot fail.
	_ = h.Execute(&hb, d)
	_ = t.Execute(&tb, d)
	return hb.String(), tb.String()
}

func welcomeBody(businessName, siteURL, dashboardURL string) (subject, html, text string) {
	h, t := render(welcomeHTML, welcomeText, bodyData{
		BusinessName: businessName,
		SiteURL:      siteURL,
		DashboardURL: dashboardURL,
	})
	return welcomeSubject, h, t
}

func failureBody(businessName, reason, supportEmail, dashboardURL string) (subject, html, text string) {
	h, t := render(failureHTML, failureText, bodyData{
		BusinessName: businessName,
		Reason:       reason,
		SupportEmail: supportEmail,
		DashboardURL: dashboardURL,
	})
	return failureSubject, h, t
}

func contactBody(businessName, visitorName, visitorEmail, visitorPhone, message string) (subject, html, text string) {
	h, t := render(contactHTML, contactText, bodyData{
		BusinessName: businessName,
		VisitorName:  visitorName,
		VisitorEmail: visitorEmail,
		VisitorPhone: visitorPhone,
		Message:      message,
	})
	return contactSubject, h, t
}

/*──────────────────────────── templates ────────────────────────────────────*/

var welcomeHTML = htmltmpl.Must(htmltmpl.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background: linear-gradient(135deg, #ef4444 0%, #dc2626 100%); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
      .content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
      .button { display: inline-block; background: #ef4444; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; margin: 10px 0; }
      .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>&#127881; Your Website is Live!</h1>
      </div>
      <div class="content">
        <p>Hi there,</p>
        <p>Great news! Your website for <strong>{{.BusinessName}}</strong> has been successfully deployed and is now live!</p>
        <p><strong>Your website URL:</strong><br>
        <a href="{{.SiteURL}}" style="color: #ef4444; font-size: 18px;">{{.SiteURL}}</a></p>
        <p style="text-align: center;">
          <a href="{{.SiteURL}}" class="button">Visit Your Website</a>
        </p>
        <p>You can also manage your website from your dashboard:</p>
        <p style="text-align: center;">
          <a href="{{.DashboardURL}}" class="button" style="background: #6b7280;">Go to Dashboard</a>
        </p>
        <p>If you have any questions or need help, feel free to reach out to our support team.</p>
        <p>Best regards,<br>The WOW Sites Team</p>
      </div>
      <div class="footer">
        <p>&copy; {{.Year}} WOW Sites. All rights reserved.</p>
      </div>
    </div>
  </body>
</html>`))

var welcomeText = texttmpl.Must(texttmpl.New("welcome").Parse(`Your Website is Live!

Hi there,

Great news! Your website for {{.BusinessName}} has been successfully deployed and is now live!

Your website URL: {{.SiteURL}}

Visit your website: {{.SiteURL}}
Manage your site: {{.DashboardURL}}

If you have any questions or need help, feel free to reach out to our support team.

Best regards,
The WOW Sites Team
`))

var failureHTML = htmltmpl.Must(htmltmpl.New("failure").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background: #dc2626; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
      .content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
      .error-box { background: #fee2e2; border-left: 4px solid #dc2626; padding: 15px; margin: 20px 0; }
      .button { display: inline-block; background: #dc2626; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; margin: 10px 0; }
      .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>&#9888;&#65039; Deployment Issue</h1>
      </div>
      <div class="content">
        <p>Hi there,</p>
        <p>We encountered an issue while deploying your website for <strong>{{.BusinessName}}</strong>.</p>
        <div class="error-box">
          <strong>Error details:</strong><br>
          {{.Reason}}
        </div>
        <p>Our team has been notified and is working to resolve this issue. We'll keep you updated.</p>
        <p>If you have any questions, please contact our support team at <a href="mailto:{{.SupportEmail}}">{{.SupportEmail}}</a>.</p>
        <p style="text-align: center;">
          <a href="{{.DashboardURL}}" class="button">Go to Dashboard</a>
        </p>
        <p>We apologize for any inconvenience.</p>
        <p>Best regards,<br>The WOW Sites Team</p>
      </div>
      <div class="footer">
        <p>&copy; {{.Year}} WOW Sites. All rights reserved.</p>
      </div>
    </div>
  </body>
</html>`))

var failureText = texttmpl.Must(texttmpl.New("failure").Parse(`Deployment Issue

Hi there,

We encountered an issue while deploying your website for {{.BusinessName}}.

Error details: {{.Reason}}

Our team has been notified and is working to resolve this issue. We'll keep you updated.

If you have any questions, please contact our support team at {{.SupportEmail}}.

We apologize for any inconvenience.

Best regards,
The WOW Sites Team
`))

var contactHTML = htmltmpl.Must(htmltmpl.New("contact").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background: #111827; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
      .content { background: #f9fafb; padding: 30px; border-radius: 0 0 10px 10px; }
      .message-box { background: #e5e7eb; border-left: 4px solid #6b7280; padding: 15px; margin: 20px 0; white-space: pre-wrap; }
      .footer { text-align: center; margin-top: 20px; color: #666; font-size: 12px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>New Website Message</h1>
      </div>
      <div class="content">
        <p>Hi there,</p>
        <p>A visitor just reached out through the contact form on <strong>{{.BusinessName}}</strong>.</p>
        <p><strong>Name:</strong> {{.VisitorName}}<br>
        <strong>Email:</strong> <a href="mailto:{{.VisitorEmail}}">{{.VisitorEmail}}</a>{{if .VisitorPhone}}<br>
        <strong>Phone:</strong> {{.VisitorPhone}}{{end}}</p>
        <div class="message-box">{{.Message}}</div>
        <p>Reply directly to this visitor at their email address above.</p>
        <p>Best regards,<br>The WOW Sites Team</p>
      </div>
      <div class="footer">
        <p>&copy; {{.Year}} WOW Sites. All rights reserved.</p>
      </div>
    </div>
  </body>
</html>`))

var contactText = texttmpl.Must(texttmpl.New("contact").Parse(`New Website Message

A visitor just reached out through the contact form on {{.BusinessName}}.

Name: {{.VisitorName}}
Email: {{.VisitorEmail}}
{{if .VisitorPhone}}Phone: {{.VisitorPhone}}
{{end}}
Message:
{{.Message}}

Reply directly to this visitor at their email address above.

Best regards,
The WOW Sites Team
`))
