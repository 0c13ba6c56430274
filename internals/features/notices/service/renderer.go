// file: internals/features/notices/service/renderer.go
package service

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	ddservice "linksclub_backend/internals/features/finance/directdebit/service"
	feeservice "linksclub_backend/internals/features/finance/fees/service"
	membermodel "linksclub_backend/internals/features/members/model"
	memberservice "linksclub_backend/internals/features/members/service"

	"linksclub_backend/internals/constants"
)

// Notice is a rendered renewal document ready for delivery.
type Notice struct {
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
}

// NoticeInput carries everything the templates read. Rendering is a pure
// function of this struct, so the same input always yields the same notice.
type NoticeInput struct {
	Member       membermodel.MemberModel
	Year         int
	Subscription decimal.Decimal
	Fees         []feeservice.LineItem
	Total        decimal.Decimal
	Schedule     *ddservice.PaymentSchedule
}

type scheduleRow struct {
	Date   time.Time
	Amount decimal.Decimal
}

type noticeView struct {
	Name         string
	ClubNumber   int
	Category     string
	Year         int
	YearLabel    string
	PeriodStart  time.Time
	Subscription decimal.Decimal
	Fees         []feeservice.LineItem
	Total        decimal.Decimal
	Schedule     []scheduleRow
}

var noticeFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return "£" + d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("2 January 2006") },
}

var directDebitTmpl = template.Must(template.New("dd").Funcs(noticeFuncs).Parse(`<html>
<body>
<p>Dear {{.Name}},</p>
<p>Your membership (number {{.ClubNumber}}, category {{.Category}}) is due for renewal on {{date .PeriodStart}}.</p>
<table border="0" cellpadding="4">
<tr><td>{{.Category}} Subscription</td><td align="right">{{money .Subscription}}</td></tr>
{{range .Fees}}{{if not .UnitPrice.IsZero}}<tr><td>{{.Description}}</td><td align="right">{{money .UnitPrice}}</td></tr>
{{end}}{{end}}<tr><td><b>Total</b></td><td align="right"><b>{{money .Total}}</b></td></tr>
</table>
<p>As you pay by Direct Debit, your subscription will be collected in twelve monthly instalments. The first collection includes any England Golf, county and locker fees in full.</p>
<table border="1" cellpadding="4">
<tr><th>Collection date</th><th>Amount</th></tr>
{{range .Schedule}}<tr><td>{{date .Date}}</td><td align="right">{{money .Amount}}</td></tr>
{{end}}</table>
<p>You need take no action; the collections will be made automatically under your existing mandate.</p>
<p>Yours sincerely,<br>The Membership Secretary</p>
</body>
</html>
`))

var bacsTmpl = template.Must(template.New("bacs").Funcs(noticeFuncs).Parse(`<html>
<body>
<p>Dear {{.Name}},</p>
<p>Your membership (number {{.ClubNumber}}, category {{.Category}}) is due for renewal on {{date .PeriodStart}}.</p>
<table border="0" cellpadding="4">
<tr><td>{{.Category}} Subscription</td><td align="right">{{money .Subscription}}</td></tr>
{{range .Fees}}{{if not .UnitPrice.IsZero}}<tr><td>{{.Description}}</td><td align="right">{{money .UnitPrice}}</td></tr>
{{end}}{{end}}<tr><td><b>Total</b></td><td align="right"><b>{{money .Total}}</b></td></tr>
</table>
<p>Please pay {{money .Total}} by bank transfer, quoting your membership number {{.ClubNumber}} as the payment reference. Payment is due by {{date .PeriodStart}}.</p>
<p>If you would prefer to spread the cost by Direct Debit, contact the office before the renewal date.</p>
<p>Yours sincerely,<br>The Membership Secretary</p>
</body>
</html>
`))

var socialTmpl = template.Must(template.New("social").Funcs(noticeFuncs).Parse(`<html>
<body>
<p>Dear {{.Name}},</p>
<p>Your social membership (number {{.ClubNumber}}) is due for renewal on {{date .PeriodStart}}.</p>
<p>The subscription for the coming year is {{money .Total}}. Please pay at the office or by bank transfer, quoting your membership number as the reference.</p>
<p>Yours sincerely,<br>The Membership Secretary</p>
</body>
</html>
`))

// RenderNotice renders the renewal document for the member's payment method:
// Direct Debit notices carry the 12-row collection schedule, BACS notices the
// transfer instructions, Social notices the short form. Zero-amount fee rows
// are left out.
func RenderNotice(in NoticeInput) (Notice, error) {
	view := noticeView{
		Name:         in.Member.FullName(),
		ClubNumber:   in.Member.MemberClubNumber,
		Category:     in.Member.MemberCategory,
		Year:         in.Year,
		YearLabel:    fmt.Sprintf("%d/%d", in.Year, in.Year+1),
		PeriodStart:  time.Date(in.Year, time.April, 1, 0, 0, 0, 0, time.UTC),
		Subscription: in.Subscription,
		Fees:         in.Fees,
		Total:        in.Total,
	}

	tmpl := bacsTmpl
	switch {
	case memberservice.IsSocial(in.Member.MemberCategory):
		tmpl = socialTmpl
	case in.Member.MemberPaymentMethod == constants.PaymentMethodDirectDebit && in.Schedule != nil:
		tmpl = directDebitTmpl
		dates := in.Schedule.CollectionDates()
		amounts := in.Schedule.InstalmentAmounts()
		for i := range dates {
			view.Schedule = append(view.Schedule, scheduleRow{Date: dates[i], Amount: amounts[i]})
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, view); err != nil {
		return Notice{}, err
	}
	return Notice{
		Subject:  fmt.Sprintf("Membership renewal %s", view.YearLabel),
		HTMLBody: buf.String(),
	}, nil
}

// BuildNotice assembles the input for one member and renders it. Fees use the
// renewal-notice rule variant, which differs from the invoicing variant on the
// out-of-county branch.
func BuildNotice(db *gorm.DB, m membermodel.MemberModel, year int) (Notice, error) {
	sub, err := feeservice.LookupSubscriptionFee(db, m.MemberCategory)
	if err != nil {
		return Notice{}, err
	}

	amounts := feeservice.LoadFeeAmounts(db)
	profile := feeservice.ProfileFromMember(m)
	fees := feeservice.AdditionalFeesForNotices(profile, amounts)

	total := sub.FeeItemAmount
	for _, li := range fees {
		total = total.Add(li.UnitPrice)
	}
	total = total.Round(2)

	in := NoticeInput{
		Member:       m,
		Year:         year,
		Subscription: sub.FeeItemAmount,
		Fees:         fees,
		Total:        total,
	}
	if m.MemberPaymentMethod == constants.PaymentMethodDirectDebit {
		s := ddservice.CalculateSchedule(profile, sub.FeeItemAmount, year, amounts)
		in.Schedule = &s
	}
	return RenderNotice(in)
}
