package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"order-desk/internal/metrics"
	"order-desk/internal/models"
)

// HandleMessage creates an order from a JSON draft received from the intake
// topic. Decode and validation failures wrap ErrDecode and ErrValidation and
// will not succeed on retry.
func (s *Service) HandleMessage(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var draft models.Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		metrics.IntakeMessages.WithLabelValues("decode_error").Inc()
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	order, err := s.CreateOrder(draft)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			metrics.IntakeMessages.WithLabelValues("invalid").Inc()
			logrus.WithError(err).Warn("skip invalid order draft from intake")
		}
		return err
	}

	metrics.IntakeMessages.WithLabelValues("created").Inc()
	logrus.WithField("order_id", order.ID).Info("order created from intake")
	return nil
}
