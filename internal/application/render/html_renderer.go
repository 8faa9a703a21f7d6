package render

import (
	"bytes"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aydinlift/partsdesk-api/internal/domain/entity"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="tr">
<head>
  <meta charset="utf-8" />
  <title>Fatura {{.Invoice.InvoiceNumber}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .invoice { max-width: 820px; margin: 0 auto; }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #1f2937;
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .meta { text-align: right; font-size: 14px; }
    .meta .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .section { margin-bottom: 24px; font-size: 14px; }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th, td {
      padding: 10px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    td.num, th.num { text-align: right; }
    .totals { margin-top: 12px; width: 320px; margin-left: auto; font-size: 14px; }
    .totals td { border-bottom: none; padding: 4px 10px; }
    .totals .grand { font-size: 16px; font-weight: bold; border-top: 1px solid #111827; }
    .footer {
      border-top: 1px solid #e5e7eb;
      padding-top: 16px;
      font-size: 12px;
      color: #6b7280;
      display: flex;
      justify-content: space-between;
    }
  </style>
</head>
<body>
  <div class="invoice">
    <div class="header">
      <div>
        <div><strong>{{.Company.Name}}</strong></div>
        <div>{{.Company.Address}}</div>
        <div>{{.Company.Phone}}</div>
        <div>{{.Company.TaxInfo}}</div>
      </div>
      <div class="meta">
        <div class="label">Fatura No</div>
        <div><strong>{{.Invoice.InvoiceNumber}}</strong></div>
        <div>Tarih: {{formatDate .Invoice.InvoiceDate}}</div>
      </div>
    </div>

    <div class="section">
      <div class="label">Müşteri</div>
      <div><strong>{{.Invoice.CustomerName}}</strong></div>
      <div>{{.Invoice.CustomerAddress}}</div>
      {{if .Invoice.CustomerTaxNumber}}<div>VKN: {{.Invoice.CustomerTaxNumber}}</div>{{end}}
    </div>

    <div class="section">
      <table>
        <thead>
          <tr>
            <th>Kod</th>
            <th>Ürün</th>
            <th class="num">Adet</th>
            <th class="num">Birim Fiyat</th>
            <th class="num">Tutar</th>
          </tr>
        </thead>
        <tbody>
          {{range .Invoice.Items}}
          <tr>
            <td>{{.ProductCode}}</td>
            <td>{{.ProductName}}</td>
            <td class="num">{{.Quantity}}</td>
            <td class="num">{{formatMoney .UnitPrice}}</td>
            <td class="num">{{formatMoney .TotalPrice}}</td>
          </tr>
          {{end}}
        </tbody>
      </table>
      <table class="totals">
        <tr><td>Ara Toplam</td><td class="num">{{formatMoney .Invoice.Subtotal}}</td></tr>
        {{if .HasDiscount}}<tr><td>İndirim</td><td class="num">-{{formatMoney .Invoice.DiscountAmount}}</td></tr>{{end}}
        <tr><td>KDV ({{formatPercent .Invoice.TaxRate}})</td><td class="num">{{formatMoney .Invoice.TaxAmount}}</td></tr>
        <tr class="grand"><td>Genel Toplam</td><td class="num">{{formatMoney .Invoice.TotalAmount}}</td></tr>
      </table>
    </div>

    <div class="footer">
      <div>{{if .Invoice.DeliveryPerson}}Teslim Eden: {{.Invoice.DeliveryPerson}}{{end}}</div>
      <div>{{if .Invoice.ReceiverPerson}}Teslim Alan: {{.Invoice.ReceiverPerson}}{{end}}</div>
    </div>
  </div>
</body>
</html>
`

type htmlRenderer struct {
	tpl *template.Template
}

// NewHTMLRenderer builds the invoice document renderer.
func NewHTMLRenderer() Renderer {
	funcs := template.FuncMap{
		"formatMoney":   formatMoney,
		"formatDate":    formatDate,
		"formatPercent": formatPercent,
	}
	return &htmlRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

type renderInput struct {
	Invoice     *entity.Invoice
	Company     CompanyInfo
	HasDiscount bool
}

func (r *htmlRenderer) RenderHTML(invoice *entity.Invoice, company CompanyInfo) (string, error) {
	if company.Name == "" {
		company.Name = "Fatura"
	}
	input := renderInput{
		Invoice:     invoice,
		Company:     company,
		HasDiscount: invoice.DiscountAmount.IsPositive(),
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " ₺"
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("02.01.2006")
}

func formatPercent(rate decimal.Decimal) string {
	return "%" + rate.Mul(decimal.NewFromInt(100)).StringFixed(0)
}
