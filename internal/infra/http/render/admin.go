package render

import (
	"bytes"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/xavierca1/londonslush-leads/internal/entity"
)

var ist = time.FixedZone("IST", 5*3600+1800)

// AdminLeadsView is everything the dashboard shows for one request.
type AdminLeadsView struct {
	Stats  entity.LeadStats
	Leads  []entity.Lead
	Filter entity.LeadFilter
	Search string
}

type filterOption struct {
	Value    entity.LeadFilter
	Label    string
	Selected bool
}

var filterLabels = []filterOption{
	{Value: "all", Label: "All Leads"},
	{Value: entity.LeadFilterToday, Label: "Today"},
	{Value: entity.LeadFilterWeek, Label: "This Week"},
	{Value: entity.LeadFilterMonth, Label: "This Month"},
	{Value: entity.LeadFilterDistributor, Label: "Distributors Only"},
	{Value: entity.LeadFilterRetail, Label: "Retail Only"},
}

var adminFuncs = template.FuncMap{
	"day":  func(t time.Time) string { return t.In(ist).Format("02/01/2006") },
	"hour": func(t time.Time) string { return t.In(ist).Format("03:04 pm") },
	"investmentBadge": func(r string) string {
		switch {
		case strings.Contains(r, "40L"):
			return "bg-purple-100 text-purple-700"
		case strings.Contains(r, "25L"):
			return "bg-blue-100 text-blue-700"
		}
		return "bg-green-100 text-green-700"
	},
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
}

var adminBody = template.Must(template.New("admin-leads").Funcs(adminFuncs).Parse(`
<nav class="bg-white shadow-md">
  <div class="container mx-auto px-4 py-4 flex items-center justify-between">
    <h1 class="text-2xl font-bold text-gray-800">Lead Management</h1>
    <a href="/admin/leads/export" class="bg-green-600 text-white px-4 py-2 rounded-lg"><i class="fas fa-file-excel mr-2"></i>Export CSV</a>
  </div>
</nav>
<div class="container mx-auto px-4 py-6">
  <div class="grid grid-cols-1 md:grid-cols-5 gap-4 mb-6">
    <div class="bg-white rounded-lg shadow p-4"><div class="text-3xl font-bold text-blue-600">{{.Stats.Total}}</div><div class="text-sm text-gray-600">Total Leads</div></div>
    <div class="bg-white rounded-lg shadow p-4"><div class="text-3xl font-bold text-green-600">{{.Stats.Today}}</div><div class="text-sm text-gray-600">Today</div></div>
    <div class="bg-white rounded-lg shadow p-4"><div class="text-3xl font-bold text-purple-600">{{.Stats.Week}}</div><div class="text-sm text-gray-600">This Week</div></div>
    <div class="bg-white rounded-lg shadow p-4"><div class="text-3xl font-bold text-orange-600">{{.Stats.Distributors}}</div><div class="text-sm text-gray-600">Distributors</div></div>
    <div class="bg-white rounded-lg shadow p-4"><div class="text-3xl font-bold text-red-600">{{.Stats.Retail}}</div><div class="text-sm text-gray-600">Retail</div></div>
  </div>
  <div class="bg-white rounded-lg shadow p-4 mb-6">
    <form method="GET" class="flex flex-wrap gap-3">
      <select name="filter" class="px-4 py-2 border rounded-lg" onchange="this.form.submit()">
      {{- range .Options}}
        <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
      {{- end}}
      </select>
      <input type="text" name="search" placeholder="Search name, phone, email, location..." value="{{.Search}}" class="flex-1 px-4 py-2 border rounded-lg">
      <button type="submit" class="bg-blue-600 text-white px-6 py-2 rounded-lg"><i class="fas fa-search mr-2"></i>Search</button>
    </form>
  </div>
  <div class="bg-white rounded-lg shadow overflow-x-auto">
    <table class="w-full">
      <thead class="bg-gray-100">
        <tr>
          <th class="px-4 py-3 text-left text-sm">ID</th>
          <th class="px-4 py-3 text-left text-sm">Name</th>
          <th class="px-4 py-3 text-left text-sm">Phone</th>
          <th class="px-4 py-3 text-left text-sm">Email</th>
          <th class="px-4 py-3 text-left text-sm">Location</th>
          <th class="px-4 py-3 text-left text-sm">Investment</th>
          <th class="px-4 py-3 text-left text-sm">Type</th>
          <th class="px-4 py-3 text-left text-sm">Created</th>
          <th class="px-4 py-3 text-left text-sm">Actions</th>
        </tr>
      </thead>
      <tbody class="divide-y divide-gray-200">
      {{- range .Leads}}
        <tr class="hover:bg-gray-50">
          <td class="px-4 py-3 text-sm">#{{.ID}}</td>
          <td class="px-4 py-3 text-sm font-medium">{{.Name}}</td>
          <td class="px-4 py-3 text-sm"><a href="tel:{{.Phone}}" class="text-blue-600">{{.Phone}}</a></td>
          <td class="px-4 py-3 text-sm">{{if .Email}}<a href="mailto:{{.Email}}" class="text-blue-600">{{.Email}}</a>{{else}}-{{end}}</td>
          <td class="px-4 py-3 text-sm">{{.Location}}</td>
          <td class="px-4 py-3 text-sm"><span class="px-2 py-1 rounded-full text-xs font-semibold {{investmentBadge .InvestmentRange}}">{{orDash .InvestmentRange}}</span></td>
          <td class="px-4 py-3 text-sm">{{.Kind}}</td>
          <td class="px-4 py-3 text-sm text-gray-600">{{day .CreatedAt}}<br><span class="text-xs">{{hour .CreatedAt}}</span></td>
          <td class="px-4 py-3 text-sm">
            <a href="https://wa.me/91{{.Phone}}" target="_blank" class="text-green-600"><i class="fab fa-whatsapp text-lg"></i></a>
            <a href="tel:{{.Phone}}" class="text-blue-600"><i class="fas fa-phone text-lg"></i></a>
          </td>
        </tr>
      {{- else}}
        <tr><td colspan="9" class="px-4 py-8 text-center text-gray-500"><i class="fas fa-inbox text-4xl mb-2"></i><p>No leads found</p></td></tr>
      {{- end}}
      </tbody>
    </table>
  </div>
</div>
`))

// AdminLeads renders the lead dashboard.
func AdminLeads(w io.Writer, view AdminLeadsView) error {
	selected := view.Filter
	if selected == entity.LeadFilterAll {
		selected = "all"
	}
	options := make([]filterOption, len(filterLabels))
	for i, opt := range filterLabels {
		opt.Selected = opt.Value == selected
		options[i] = opt
	}

	var body bytes.Buffer
	err := adminBody.Execute(&body, struct {
		AdminLeadsView
		Options []filterOption
	}{view, options})
	if err != nil {
		return err
	}
	return Page(w, "Admin Dashboard - London Slush Leads", template.HTML(body.String()))
}
