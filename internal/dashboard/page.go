// ABOUTME: Embedded HTML page for the interactive dashboard.
// ABOUTME: A single template with a metric selector that polls the JSON API.
package dashboard

import (
	"html/template"
	"net/http"

	"github.com/strengthlab/creatine/internal/models"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Creatine Study Dashboard</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
.kpis { display: flex; gap: 1rem; flex-wrap: wrap; margin: 1rem 0; }
.kpi { border: 1px solid #ddd; border-radius: 6px; padding: 0.8rem 1.2rem; min-width: 10rem; }
.kpi .label { font-size: 0.75rem; text-transform: uppercase; color: #888; }
.kpi .value { font-size: 1.3rem; font-weight: 600; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #ddd; padding: 0.3rem 0.7rem; text-align: right; }
th { background: #f5f5f5; }
td:first-child, th:first-child { text-align: left; }
.error { color: #b00020; }
select { font-size: 1rem; padding: 0.2rem; }
</style>
</head>
<body>
<h1>Creatine Study Dashboard</h1>
<label>Metric:
<select id="metric">
{{range .Metrics}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
</label>
<div id="status" class="error"></div>
<div class="kpis" id="kpis"></div>
<h2>Progression</h2>
<div id="progression"></div>
<h2>Group comparisons</h2>
<div id="groups"></div>
<script>
const fmt = v => v === null ? "—" : (typeof v === "number" ? v.toFixed(3) : v);

function renderTable(tbl) {
  if (!tbl || !tbl.length) { return "<p>No data.</p>"; }
  const cols = Object.keys(tbl[0]);
  let html = "<table><tr>" + cols.map(c => "<th>" + c + "</th>").join("") + "</tr>";
  for (const row of tbl) {
    html += "<tr>" + cols.map(c => "<td>" + fmt(row[c]) + "</td>").join("") + "</tr>";
  }
  return html + "</table>";
}

async function refresh() {
  const metric = document.getElementById("metric").value;
  const status = document.getElementById("status");
  status.textContent = "";
  try {
    const [kpis, prog, groups] = await Promise.all([
      fetch("/api/kpis?metric=" + metric).then(r => r.json()),
      fetch("/api/progression?metric=" + metric).then(r => r.json()),
      fetch("/api/groups?metric=" + metric).then(r => r.json()),
    ]);
    if (kpis.error) { status.textContent = kpis.error; return; }
    document.getElementById("kpis").innerHTML = [
      ["Δ creatine − placebo", fmt(kpis.delta)],
      ["95% CI", fmt(kpis.ci_lower) + " to " + fmt(kpis.ci_upper)],
      ["Cohen's d", fmt(kpis.effect_size) + " (" + kpis.interpretation + ")"],
      ["p-value", fmt(kpis.p_value)],
      ["n (creatine / placebo)", kpis.n_creatine + " / " + kpis.n_placebo],
    ].map(([label, value]) =>
      '<div class="kpi"><div class="label">' + label + '</div><div class="value">' + value + "</div></div>"
    ).join("");
    document.getElementById("progression").innerHTML = renderTable(prog);
    document.getElementById("groups").innerHTML =
      "<h3>By age group</h3>" + renderTable(groups.age_groups) +
      "<h3>By training status</h3>" + renderTable(groups.training_status);
  } catch (err) {
    status.textContent = String(err);
  }
}

document.getElementById("metric").addEventListener("change", refresh);
refresh();
</script>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Metrics []models.Metric
	}{Metrics: models.TrackedMetrics}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.log.WithError(err).Error("render dashboard page")
	}
}
