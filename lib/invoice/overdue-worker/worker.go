package invoiceoverdueworker

import (
	"context"
	"time"
	"wfm-tools-backend/config"
	invoicehandler "wfm-tools-backend/lib/invoice"
	baseworker "wfm-tools-backend/lib/utils/base-worker"
)

// StartWorker runs the periodic overdue check until the context is done.
func StartWorker(ctx context.Context) {
	interval := time.Duration(config.Conf.Invoice.OverdueCheckInterval) * time.Second
	worker := baseworker.NewInstance("invoice_overdue", time.Minute, interval)
	go worker.Run(ctx, func(ctx context.Context) {
		invoicehandler.Instance.CheckOverdue(ctx)
	})
}
