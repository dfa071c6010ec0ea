package web

import (
	"html/template"
	"net/http"

	"github.com/abhisek/nandadx/internal/diagnosis"
	"github.com/abhisek/nandadx/internal/logger"
	"github.com/abhisek/nandadx/internal/session"
)

type formSymptom struct {
	Name    string
	Display string
}

type formData struct {
	Symptoms  []formSymptom
	Threshold float64
	MinRating int
	MaxRating int
}

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Sugestão de Diagnósticos de Enfermagem</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; color: #1f2933; }
fieldset { border: 1px solid #cbd2d9; margin-bottom: 1rem; }
.symptoms { columns: 2; }
.care { margin-left: 2rem; color: #52606d; }
.error { color: #b3261e; }
.ok { color: #2e7d32; }
</style>
</head>
<body>
<h1>Sugestão de Diagnósticos de Enfermagem</h1>
<form id="intake">
<p><label>Iniciais: <input name="initials" maxlength="10" placeholder="Ex.: MCS"></label></p>
<fieldset><legend>Sintomas</legend>
<div class="symptoms">
{{range .Symptoms}}<label><input type="checkbox" name="symptom" value="{{.Name}}"> {{.Display}}</label><br>
{{end}}</div>
</fieldset>
<button type="submit">Sugerir diagnósticos</button>
</form>

<form id="review" hidden>
<fieldset><legend>Diagnósticos sugeridos</legend><div id="suggestions"></div>
<p><label>Diagnóstico personalizado: <input name="custom"></label></p>
</fieldset>
<p><label>Observações: <textarea name="observations" rows="3" cols="60"></textarea></label></p>
<p><label>Avalie a aplicação (de {{.MinRating}} a {{.MaxRating}}):
<input type="number" name="rating" min="{{.MinRating}}" max="{{.MaxRating}}" value="{{.MinRating}}"></label></p>
<button type="submit">Salvar Avaliação</button>
<p id="status"></p>
</form>

<script>
const threshold = {{.Threshold}};
let started = null;
let chosen = [];
let picked = [];

document.getElementById("intake").addEventListener("change", (ev) => {
  const box = ev.target;
  if (box.name !== "symptom") return;
  picked = picked.filter(v => v !== box.value);
  if (box.checked) picked.push(box.value);
});

document.getElementById("intake").addEventListener("submit", async (ev) => {
  ev.preventDefault();
  chosen = [...picked];
  if (chosen.length > 0 && started === null) started = Date.now();
  const res = await fetch("/api/suggestions", {
    method: "POST", headers: {"Content-Type": "application/json"},
    body: JSON.stringify({symptoms: chosen, threshold: threshold}),
  });
  const list = document.getElementById("suggestions");
  list.innerHTML = "";
  for (const s of await res.json()) {
    const row = document.createElement("div");
    const box = document.createElement("input");
    box.type = "checkbox";
    box.dataset.diagnosis = s.diagnosis;
    box.dataset.symptom = s.symptom;
    const label = document.createElement("label");
    label.append(box, " " + s.message);
    const care = document.createElement("div");
    care.className = "care";
    box.addEventListener("change", async () => {
      care.textContent = "";
      if (!box.checked) return;
      const r = await fetch("/api/care/" + encodeURIComponent(s.diagnosis));
      const c = await r.json();
      care.textContent = c.instructions.map(i => "• " + i).join("\n");
      care.style.whiteSpace = "pre-line";
    });
    row.append(label, care);
    list.append(row);
  }
  document.getElementById("review").hidden = false;
});

document.getElementById("review").addEventListener("submit", async (ev) => {
  ev.preventDefault();
  const form = ev.target;
  const byDiagnosis = new Map();
  for (const box of form.querySelectorAll("input[type=checkbox]:checked")) {
    const d = box.dataset.diagnosis;
    if (!byDiagnosis.has(d)) byDiagnosis.set(d, []);
    byDiagnosis.get(d).push(box.dataset.symptom);
  }
  const body = {
    initials: document.querySelector("input[name=initials]").value,
    selections: [...byDiagnosis].map(([diagnosis, symptoms]) => ({diagnosis, symptoms})),
    custom: form.custom.value,
    symptoms: chosen,
    observations: form.observations.value,
    rating: Number(form.rating.value),
    elapsed_seconds: started === null ? 0 : (Date.now() - started) / 1000,
  };
  const res = await fetch("/api/evaluations", {
    method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(body),
  });
  const status = document.getElementById("status");
  if (res.ok) {
    status.className = "ok";
    status.textContent = "Avaliação salva com sucesso.";
  } else {
    status.className = "error";
    status.textContent = await res.text();
  }
});
</script>
</body>
</html>
`))

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	names := s.engine.Attributes().Names()
	data := formData{
		Symptoms:  make([]formSymptom, len(names)),
		Threshold: s.threshold,
		MinRating: session.MinRating,
		MaxRating: session.MaxRating,
	}
	for i, n := range names {
		data.Symptoms[i] = formSymptom{Name: n, Display: diagnosis.DisplayName(n)}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, data); err != nil {
		logger.Warn("render form: %v", err)
	}
}
