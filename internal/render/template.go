package render

import "html/template"

var cardTmpl = template.Must(template.New("card").Parse(`<div class="card">
  <div class="card__header">
    {{- if .ImageURL}}
    <img class="card__image" src="{{.ImageURL}}" alt="{{.Title}}">
    {{- end}}
    <h3 class="card__title">{{.Title}}</h3>
  </div>
  {{- if .PromoCopy}}
  <p class="card__promo-copy">{{.PromoCopy}}</p>
  {{- end}}
  {{- if .Description}}
  <p class="card__description">{{.Description}}</p>
  {{- end}}
  {{- with .Offer}}
  <div class="card__offer">
    <h4>{{.Heading}}</h4>
    <ul>
      {{- range .Items}}
      <li>{{.}}</li>
      {{- end}}
    </ul>
  </div>
  {{- end}}
  {{- range .Features}}
  <div class="card__features">
    <h4>{{.Heading}}</h4>
    <ul>
      {{- range .Items}}
      <li>{{.}}</li>
      {{- end}}
    </ul>
  </div>
  {{- end}}
  {{- with .FeeTable}}
  <div class="card__fees">
    <h4>{{.Heading}}</h4>
    <table>
      {{- range .Rows}}
      <tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
      {{- end}}
    </table>
  </div>
  {{- end}}
</div>
`))

var fallbackTmpl = template.Must(template.New("fallback").Parse(`<div class="card card--fallback">
  {{- if .Title}}
  <h3 class="card__title">{{.Title}}</h3>
  {{- end}}
  <p class="card__message">{{.Message}}</p>
</div>
`))
