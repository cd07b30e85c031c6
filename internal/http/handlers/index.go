package handlers

import (
	"html/template"
	"net/http"

	"infographic/internal/domain"
	"infographic/internal/orchestrator"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="vi">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Infographic bài giảng</title>
<style>
body{margin:0;font-family:"Be Vietnam Pro","Segoe UI",Roboto,sans-serif;background:#f1f5f9;color:#0f172a}
main{max-width:1200px;margin:0 auto;padding:24px}
form.input{display:grid;gap:12px;background:#fff;padding:20px;border-radius:16px;box-shadow:0 1px 3px rgba(0,0,0,.1)}
textarea{min-height:160px;padding:12px;border:1px solid #cbd5e1;border-radius:12px;font:inherit}
button{padding:10px 18px;border:0;border-radius:10px;background:#4f46e5;color:#fff;font-weight:600;cursor:pointer}
.actions{display:flex;gap:8px;margin:16px 0}
.actions form{margin:0}
.notice{padding:12px 16px;border-radius:12px;background:#fee2e2;color:#991b1b}
.state{font-size:14px;color:#475569}
iframe{width:100%;aspect-ratio:16/9;border:0;border-radius:12px;background:#fff}
</style>
</head>
<body>
<main>
<h1>Tạo infographic từ bài giảng</h1>
{{with .Notice}}<p class="notice">{{.}}</p>{{end}}
{{with .Snapshot.Error}}<p class="notice">{{.}}</p>{{end}}
<form class="input" method="post" action="/v1/infographics?format=html" enctype="multipart/form-data">
<textarea name="text" placeholder="Dán nội dung bài học vào đây..."></textarea>
<input type="file" name="images" accept="image/*" multiple>
<button type="submit">Tạo infographic</button>
</form>
<p class="state">Trạng thái: {{.Snapshot.State}}</p>
{{if .Snapshot.Result}}
<div class="actions">
<form method="post" action="/v1/infographics/regenerate?format=html"><button type="submit">Tạo lại</button></form>
<form method="post" action="/v1/infographics/relayout?format=html"><button type="submit">Đổi bố cục</button></form>
<a href="/v1/infographics/current/export"><button type="button">Tải xuống (.zip)</button></a>
</div>
<iframe src="/v1/infographics/current/view" title="{{.Snapshot.Result.Topic}}"></iframe>
{{end}}
</main>
</body>
</html>`))

type indexView struct {
	Notice   string
	Snapshot orchestrator.Snapshot
}

// Index serves the input form and embeds the current infographic, if any.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	o := a.Sessions.Resolve(w, r)
	view := indexView{Notice: r.URL.Query().Get("notice"), Snapshot: o.Snapshot()}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := indexTemplate.Execute(w, view); err != nil {
		a.Logger.Warn().Err(err).Msg("handlers: index render interrupted")
	}
}

func noticeFor(err error) string {
	return domain.UserMessage(err)
}
