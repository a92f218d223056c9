package render

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/xavierca1/londonslush-leads/internal/entity"
)

const DefaultTitle = "London Slush - Premium Franchise & Business Opportunities"

var layout = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <meta name="description" content="Start a profitable beverage business with London Slush. Franchise opportunities, retail partnerships, and distributor programs across India.">
  <script src="https://cdn.tailwindcss.com"></script>
  <link href="https://cdn.jsdelivr.net/npm/@fortawesome/fontawesome-free@6.4.0/css/all.min.css" rel="stylesheet">
</head>
<body class="bg-gray-50">
{{.Body}}
</body>
</html>
`))

// Page wraps already-rendered markup in the site layout. An empty title
// falls back to DefaultTitle.
func Page(w io.Writer, title string, body template.HTML) error {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	return layout.Execute(w, struct {
		Title string
		Body  template.HTML
	}{title, body})
}

type thankYouData struct {
	Name      string
	Title     string
	Icon      string
	Color     string
	NextSteps []string
}

var thankYouCopy = map[entity.LeadKind]thankYouData{
	entity.LeadKindRetail: {
		Title: "Request Received Successfully!",
		Icon:  "coffee",
		Color: "purple",
		NextSteps: []string{
			"We'll send you detailed pricing within 24 hours",
			"A custom ROI calculator based on your footfall",
			"Our retail partnership team will call you",
			"We can arrange a demo at your outlet if needed",
		},
	},
	entity.LeadKindDistributor: {
		Title: "Application Under Review!",
		Icon:  "truck",
		Color: "green",
		NextSteps: []string{
			"Our partnerships team will review your profile within 48 hours",
			"You'll receive a distributor information pack via email",
			"A senior partner manager will contact you",
			"If shortlisted, we'll invite you for a detailed discussion",
		},
	},
}

var thankYouBody = template.Must(template.New("thank-you").Parse(`
<section class="py-20 bg-gradient-to-br from-green-50 to-blue-50">
  <div class="max-w-3xl mx-auto text-center">
    <div class="w-24 h-24 bg-{{.Color}}-100 rounded-full flex items-center justify-center mx-auto mb-6">
      <i class="fas fa-{{.Icon}} text-{{.Color}}-600 text-5xl"></i>
    </div>
    <h1 class="text-4xl font-bold text-gray-800 mb-4">Thank You, {{.Name}}! 🎉</h1>
    <h2 class="text-2xl font-semibold text-gray-700 mb-6">{{.Title}}</h2>
    <div class="bg-white rounded-3xl shadow-xl p-8 mb-8">
      <h3 class="text-2xl font-bold text-gray-800 mb-6">Next Steps</h3>
      <ol class="space-y-4 text-left">
      {{- range .NextSteps}}
        <li class="text-gray-700">{{.}}</li>
      {{- end}}
      </ol>
    </div>
    <a href="tel:8006999805" class="inline-block bg-red-600 text-white px-6 py-3 rounded-xl font-semibold">Call: 800-699-9805</a>
  </div>
</section>
`))

// ThankYou renders the post-submission page. Unknown kinds get the retail copy.
func ThankYou(w io.Writer, kind entity.LeadKind, name string) error {
	data, ok := thankYouCopy[kind]
	if !ok {
		data = thankYouCopy[entity.LeadKindRetail]
	}
	data.Name = strings.TrimSpace(name)
	if data.Name == "" {
		data.Name = "there"
	}

	var body bytes.Buffer
	if err := thankYouBody.Execute(&body, data); err != nil {
		return err
	}
	return Page(w, "Thank You - London Slush", template.HTML(body.String()))
}

var errorBody = template.HTML(`
<div class="min-h-screen flex items-center justify-center px-4">
  <div class="max-w-md w-full bg-white rounded-2xl shadow-xl p-8 text-center">
    <h1 class="text-2xl font-bold text-gray-800 mb-4">Something Went Wrong</h1>
    <p class="text-gray-600 mb-6">We couldn't process your application at this time. Please try again or contact us directly.</p>
    <a href="mailto:support@londonslush.com" class="block w-full bg-gray-100 px-6 py-3 rounded-xl">Email: support@londonslush.com</a>
    <a href="tel:8006999805" class="block w-full bg-red-600 text-white px-6 py-3 rounded-xl mt-3">Call: 800-699-9805</a>
  </div>
</div>
`)

// SubmissionError is shown when a form post cannot be processed at all.
func SubmissionError(w io.Writer) error {
	return Page(w, "Submission Error - London Slush", errorBody)
}
