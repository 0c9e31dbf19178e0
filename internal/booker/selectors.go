package booker

import (
	"fmt"
	"strings"
)

// Top-level document. XPath.
const (
	signInLinkXPath      = `//a[@class="reservation-quick__signin-now-link"]`
	emailInputXPath      = `//input[@aria-label="Email address Required"]`
	passwordInputXPath   = `//input[@aria-label="Password Required"]`
	signInButtonXPath    = `//div[@class="signin__action"]/button`
	calendarInputXPath   = `//input[@aria-label="Date picker, current date"]`
	nextMonthXPath       = `//i[@aria-label="Switch calendar to next month right arrow"]`
	dayXPathTemplate     = `//tr[@class="an-calendar-table-row"]//div[text()="%d"]`
	eventNameInputXPath  = `//input[@data-qa-id="quick-reservation-eventType-name"]`
	confirmButtonXPath   = `//button[@data-qa-id="quick-reservation-ok-button"]`
	reserveButtonXPath   = `//button[@data-qa-id="quick-reservation-reserve-button"]`
	paymentFrameXPath    = `//div[@class="module-checkout"]//iframe`
	billingDropdownXPath = `//div[@class="dropdown__button input__field"]/span[@class="dropdown__button-text"]`
	billingOptionXPath   = `//div[@class="option-content__text" and text()=%s]`
	payButtonXPath       = `//button[@data-qa-id="checkout-orderSummary-payBtn"]`
)

// Inside the checkout frame. CSS.
const (
	cardHolderCSS      = `input[name="holderName"]`
	cardNumberCSS      = `input[name="cardNumber"]`
	cvcCSS             = `input[name="cvv"]`
	expirationMonthCSS = `select.dropdown[name="month"]`
	expirationYearCSS  = `select.dropdown[name="year"]`
)

func dayXPath(day int) string {
	return fmt.Sprintf(dayXPathTemplate, day)
}

func billingOption(label string) string {
	return fmt.Sprintf(billingOptionXPath, xpathLiteral(label))
}

// xpathLiteral quotes s as an XPath 1.0 string literal. XPath has no escape
// sequences, so a value holding both quote kinds is built with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, `'`) {
		return `'` + s + `'`
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		if p != "" {
			quoted = append(quoted, `"`+p+`"`)
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
