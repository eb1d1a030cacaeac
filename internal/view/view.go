package view

import (
	"bytes"
	"fmt"
	"html/template"

	"ebook-checkout/internal/client"
)

var (
	autoSubmitTmpl = template.Must(template.New("auto_submit").Parse(autoSubmitHTML))
	statusTmpl     = template.Must(template.New("status").Parse(statusHTML))
)

// StatusPage is what the browser lands on once a payment attempt ends,
// on the gateway return URL or on the cancel and failure pages.
type StatusPage struct {
	OrderID   string
	Status    string
	Countdown int
}

func (p StatusPage) Heading() string {
	switch p.Status {
	case "confirmed":
		return "Payment confirmed"
	case "pending":
		return "Payment processing"
	case "cancelled":
		return "Payment cancelled"
	case "timed_out":
		return "Payment timed out"
	case "blocked":
		return "Payment window blocked"
	case "failed":
		return "Payment failed"
	}
	return "Thank you for your order"
}

// Failed is true for every outcome that did not reach the gateway's success path.
func (p StatusPage) Failed() bool {
	switch p.Status {
	case "cancelled", "timed_out", "blocked", "failed":
		return true
	}
	return false
}

func (p StatusPage) Message() string {
	switch p.Status {
	case "cancelled":
		return "You closed the payment window without completing the payment."
	case "timed_out":
		return "The payment window stayed open too long and was closed."
	case "blocked":
		return "Your browser blocked the payment window. Allow popups for this site and try again."
	case "failed":
		return "We could not complete the payment."
	}
	return "Your ebook and bonuses will be sent to your email shortly."
}

// AutoSubmit renders a page holding form as hidden inputs and submits it
// to the gateway after a short delay.
func AutoSubmit(form *client.FormPost) ([]byte, error) {
	var buf bytes.Buffer
	if err := autoSubmitTmpl.Execute(&buf, form); err != nil {
		return nil, fmt.Errorf("render auto submit form: %w", err)
	}
	return buf.Bytes(), nil
}

func Status(page StatusPage) ([]byte, error) {
	if page.Countdown <= 0 {
		page.Countdown = 5
	}
	var buf bytes.Buffer
	if err := statusTmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render status page: %w", err)
	}
	return buf.Bytes(), nil
}

const autoSubmitHTML = `<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>Processing Payment</title>
	<style>
		body {
			font-family: Arial, sans-serif;
			margin: 0;
		}
		.overlay {
			position: fixed;
			top: 0;
			left: 0;
			width: 100%;
			height: 100%;
			background: rgba(0, 0, 0, 0.8);
			color: white;
			display: flex;
			align-items: center;
			justify-content: center;
			z-index: 9999;
		}
		.title {
			font-size: 24px;
			margin-bottom: 10px;
		}
	</style>
</head>
<body>
	<form id="cashfree_form" action="{{.Action}}" method="{{.Method}}">
	{{- range .Fields}}
		<input type="hidden" name="{{.Name}}" value="{{.Value}}">
	{{- end}}
		<noscript><button type="submit">Continue to payment</button></noscript>
	</form>

	<div class="overlay">
		<div style="text-align: center;">
			<div class="title">Processing Payment...</div>
			<div>Redirecting to Cashfree Payment Gateway</div>
		</div>
	</div>

	<script>
		setTimeout(function () {
			document.getElementById("cashfree_form").submit();
		}, 1000);
	</script>
</body>
</html>
`

const statusHTML = `<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>Payment Status</title>
	<style>
		body {
			font-family: Arial, sans-serif;
			text-align: center;
			margin-top: 80px;
		}
		.countdown {
			font-size: 24px;
			font-weight: bold;
		}
	</style>
</head>
<body>
	<h2>{{.Heading}}</h2>
	{{- if .OrderID}}
	<p>Order <strong>{{.OrderID}}</strong></p>
	{{- end}}
	<p>{{.Message}}</p>
	{{- if .Failed}}
	<p>You can go back to the checkout and try again.</p>
	{{- end}}
	<p>Redirecting to homepage in <span class="countdown" id="countdown">{{.Countdown}}</span> seconds…</p>

	<script>
		let seconds = {{.Countdown}};
		const el = document.getElementById("countdown");

		const timer = setInterval(function () {
			seconds--;
			el.textContent = seconds;

			if (seconds <= 0) {
				clearInterval(timer);
				window.location.href = "/";
			}
		}, 1000);
	</script>
</body>
</html>
`
