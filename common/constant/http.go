package constant

const HeaderIdempotencyKey = "Idempotency-Key"
