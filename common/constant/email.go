package constant

const EmailTicketConfirmationTemplate = `
Dear %s,

Thank you for your purchase! Your ticket has been reserved and your payment is confirmed.

Ticket Details:
------------------------------------------
Ticket ID: %s
Concert: %s
Ticket Number: %s
Price: %s
------------------------------------------

Please show this ticket number at the venue entrance.

Important Information:
• Please arrive at least 30 minutes before the show
• Valid ID may be required for entry
• No refunds or exchanges are permitted

If you have any questions, please contact our support team at support@relecloud.com.

We look forward to seeing you at the concert!

Best regards,
Relecloud Concerts Team

Note: This is an automated message, please do not reply to this email.
`

const EmailTicketConfirmationSubject = "Your ticket for %s"
