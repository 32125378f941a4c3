package usecase

import (
	"fmt"
	"regexp"
	"time"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/pkg/utils"
	"github.com/Donelpee/travelcover-insurance/templates"
)

// Template is the renderer's input and output shape. SMS templates
// leave Subject empty.
type Template struct {
	Subject string
	Body    string
}

var placeholderRe = regexp.MustCompile(`\{[a-z_]+\}`)

// MessageVars builds the substitution map for one passenger on one
// manifest. The trip date is rendered in long form; an unparseable
// stored date falls back to the raw string rather than failing a send.
func MessageVars(p *entity.Passenger, m *entity.Manifest, route *entity.Route) map[string]string {
	tripDate := m.TripDate
	if d, err := time.Parse("2006-01-02", m.TripDate); err == nil {
		tripDate = utils.LongDate(d)
	}

	vars := map[string]string{
		"passenger_name":   p.FullName,
		"next_of_kin_name": p.NextOfKinName,
		"company":          route.CompanyName(),
		"trip_date":        tripDate,
	}
	if route != nil {
		vars["departure"] = route.DepartureLocation
		vars["destination"] = route.Destination
	}
	return vars
}

// Render substitutes {key} tokens in the template with values from
// vars. Replacement is literal, global and case-sensitive; tokens with
// no matching key become the empty string, never a leftover {key}.
// A template with an empty body is a render error.
func Render(tpl Template, vars map[string]string) (Template, error) {
	if tpl.Body == "" {
		return Template{}, fmt.Errorf("%w: empty body", entity.ErrRenderTemplate)
	}

	replace := func(s string) string {
		return placeholderRe.ReplaceAllStringFunc(s, func(token string) string {
			key := token[1 : len(token)-1]
			return vars[key]
		})
	}

	return Template{
		Subject: replace(tpl.Subject),
		Body:    replace(tpl.Body),
	}, nil
}

// DefaultTemplate returns the canonical built-in template for a
// recipient type and channel, used whenever no stored template applies.
func DefaultTemplate(rt entity.RecipientType, ch entity.Channel) Template {
	if ch == entity.ChannelEmail {
		if rt == entity.RecipientNextOfKin {
			return Template{Subject: templates.DefaultNextOfKinEmailSubject, Body: templates.DefaultNextOfKinEmailBody}
		}
		return Template{Subject: templates.DefaultPassengerEmailSubject, Body: templates.DefaultPassengerEmailBody}
	}
	if rt == entity.RecipientNextOfKin {
		return Template{Body: templates.DefaultNextOfKinSMS}
	}
	return Template{Body: templates.DefaultPassengerSMS}
}
