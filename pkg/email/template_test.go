package email_test

import (
	"strings"
	"testing"
	"time"

	"agentai-website-api/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *email.Renderer {
	t.Helper()
	r, err := email.NewRenderer("America/New_York")
	require.NoError(t, err)
	return r
}

func sampleData(template string) email.ContactEmailData {
	return email.ContactEmailData{
		Template: template,
		Name:     "Jordan Smith",
		Email:    "jordan@clinic.example",
		Message:  "We process a lot of claims.\nCan you help?",
		IP:       "203.0.113.7",
	}
}

func TestEscapeHTML(t *testing.T) {
	t.Run("Should neutralize all five markup characters", func(t *testing.T) {
		got := email.EscapeHTML(`<a href="x">Tom & 'Jerry'</a>`)
		assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;Tom &amp; &#039;Jerry&#039;&lt;/a&gt;", got)
	})

	t.Run("Should escape ampersands exactly once", func(t *testing.T) {
		assert.Equal(t, "&amp;lt;", email.EscapeHTML("&lt;"))
	})
}

func TestRendererRender(t *testing.T) {
	r := newRenderer(t)

	t.Run("Should escape script tags in name and message", func(t *testing.T) {
		data := sampleData("contact")
		data.Name = "<script>alert(1)</script>"
		data.Message = `<script>alert(1)</script> & "quotes" 'single'`

		out, err := r.Render(data)
		require.NoError(t, err)

		assert.NotContains(t, out.HTML, "<script>")
		assert.NotContains(t, out.HTML, "</script>")
		assert.Contains(t, out.HTML, "&lt;script&gt;alert(1)&lt;/script&gt;")
		assert.Contains(t, out.HTML, "&amp; &quot;quotes&quot; &#039;single&#039;")
	})

	t.Run("Should default to the contact template", func(t *testing.T) {
		out, err := r.Render(sampleData(""))
		require.NoError(t, err)
		assert.Equal(t, "New Contact: Jordan Smith", out.Subject)
		assert.Contains(t, out.HTML, "New Contact Form Submission")
	})

	t.Run("Should render demo fields and subject for demo template", func(t *testing.T) {
		data := sampleData("demo")
		data.MonthlyClaims = "5,000 - 10,000"
		data.PreferredTime = "Morning (9AM - 12PM EST)"

		out, err := r.Render(data)
		require.NoError(t, err)
		assert.Contains(t, out.Subject, "Demo Request")
		assert.Contains(t, out.HTML, "Monthly claims volume")
		assert.Contains(t, out.HTML, "5,000 - 10,000")
		assert.Contains(t, out.HTML, "Morning (9AM - 12PM EST)")
	})

	t.Run("Should omit demo fields for contact template", func(t *testing.T) {
		data := sampleData("contact")
		data.MonthlyClaims = "5,000 - 10,000"
		data.PreferredTime = "Flexible"

		out, err := r.Render(data)
		require.NoError(t, err)
		assert.NotContains(t, out.HTML, "Monthly claims volume")
		assert.NotContains(t, out.HTML, "5,000 - 10,000")
		assert.NotContains(t, out.HTML, "Preferred demo time")
	})

	t.Run("Should omit empty optional fields", func(t *testing.T) {
		out, err := r.Render(sampleData("contact"))
		require.NoError(t, err)
		assert.NotContains(t, out.HTML, "Phone:")
		assert.NotContains(t, out.HTML, "Company:")
	})

	t.Run("Should include role on about template", func(t *testing.T) {
		data := sampleData("about")
		data.Role = "Billing Manager"
		out, err := r.Render(data)
		require.NoError(t, err)
		assert.Equal(t, "About Page Inquiry: Jordan Smith", out.Subject)
		assert.Contains(t, out.HTML, "Billing Manager")
	})

	t.Run("Should turn newlines in the message into line breaks", func(t *testing.T) {
		out, err := r.Render(sampleData("contact"))
		require.NoError(t, err)
		assert.Contains(t, out.HTML, "We process a lot of claims.<br>Can you help?")
	})

	t.Run("Should convert the browser timestamp to the display timezone", func(t *testing.T) {
		data := sampleData("contact")
		data.Timestamp = "2025-01-15T15:30:00.000Z"
		out, err := r.Render(data)
		require.NoError(t, err)
		assert.Contains(t, out.HTML, "Wed, Jan 15, 2025 at 10:30 AM EST")
	})

	t.Run("Should fall back to receipt time without a timestamp", func(t *testing.T) {
		data := sampleData("contact")
		data.Received = time.Date(2025, 7, 4, 16, 0, 0, 0, time.UTC)
		out, err := r.Render(data)
		require.NoError(t, err)
		assert.Contains(t, out.HTML, "Fri, Jul 4, 2025 at 12:00 PM EDT")
	})

	t.Run("Should show an unparseable timestamp escaped", func(t *testing.T) {
		data := sampleData("contact")
		data.Timestamp = "yesterday <b>"
		out, err := r.Render(data)
		require.NoError(t, err)
		assert.Contains(t, out.HTML, "yesterday &lt;b&gt;")
	})

	t.Run("Should render the metadata block", func(t *testing.T) {
		data := sampleData("contact")
		data.PageURL = "https://agentai.app/contact?a=1&b=2"
		out, err := r.Render(data)
		require.NoError(t, err)
		assert.Contains(t, out.HTML, "<td>direct</td>")
		assert.Contains(t, out.HTML, "https://agentai.app/contact?a=1&amp;b=2")
		assert.Contains(t, out.HTML, "203.0.113.7")
	})

	t.Run("Should keep the subject on one line", func(t *testing.T) {
		data := sampleData("contact")
		data.Name = "Jordan\r\nBcc: victim@example.com"
		out, err := r.Render(data)
		require.NoError(t, err)
		assert.False(t, strings.ContainsAny(out.Subject, "\r\n"))
	})

	t.Run("Should reject unknown templates", func(t *testing.T) {
		_, err := r.Render(sampleData("newsletter"))
		assert.Error(t, err)
	})
}

func TestNewRendererRejectsBadTimezone(t *testing.T) {
	_, err := email.NewRenderer("Mars/Olympus_Mons")
	assert.Error(t, err)
}
