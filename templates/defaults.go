// Package templates holds the built-in message bodies used when no
// stored template applies. There is exactly one canonical default per
// recipient type and channel.
package templates

// Default SMS bodies. Placeholders follow the stored-template grammar.
const (
	DefaultPassengerSMS = "Dear {passenger_name}, safe journey from {departure} to {destination} with {company}. " +
		"Trip: {trip_date}. You are covered by TravelCover Insurance."

	DefaultNextOfKinSMS = "Hello {next_of_kin_name}, {passenger_name} is traveling from {departure} to {destination} " +
		"on {trip_date} with {company}. Covered by travel insurance."
)

// Default email subject lines and HTML bodies.
const (
	DefaultPassengerEmailSubject = "Your trip with {company} on {trip_date}"
	DefaultPassengerEmailBody    = "<p>Dear {passenger_name},</p>" +
		"<p>Your journey from {departure} to {destination} with {company} on {trip_date} is covered by TravelCover Insurance.</p>" +
		"<p>Safe travels.</p>"

	DefaultNextOfKinEmailSubject = "{passenger_name} is traveling with {company}"
	DefaultNextOfKinEmailBody    = "<p>Hello {next_of_kin_name},</p>" +
		"<p>{passenger_name} is traveling from {departure} to {destination} on {trip_date} with {company}, " +
		"covered by travel insurance.</p>"
)
