package upload_receipt

import "context"

type ReservationsService interface {
	AttachReceipt(ctx context.Context, id int64, receipt []byte, filename string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
