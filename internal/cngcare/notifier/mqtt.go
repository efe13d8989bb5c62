package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Afox1/cngcare/internal/cngcare/core"
	"github.com/Afox1/cngcare/internal/cngcare/core/model"
	"github.com/Afox1/cngcare/internal/pkg/mqtt/paths"
	pkgmqtt "github.com/Afox1/cngcare/pkg/mqtt"
	"github.com/Afox1/cngcare/pkg/options"
)

// qosAtLeastOnce is the QoS of report events.
const qosAtLeastOnce = 1

var _ core.ReportNotifier = (*MQTTNotifier)(nil)

type MQTTNotifier struct {
	client    pkgmqtt.Client
	topicRoot string
}

// NewMQTTNotifier connects a dedicated publisher to the broker in opts.
// The connection is established in the background.
func NewMQTTNotifier(ctx context.Context, opts *options.MqttOptions) (*MQTTNotifier, pkgmqtt.Client, error) {
	client, err := pkgmqtt.NewClient(opts.ToClientConfig())
	if err != nil {
		return nil, nil, err
	}

	if err := client.Start(ctx); err != nil {
		return nil, nil, err
	}

	return New(client, opts.TopicRoot), client, nil
}

// New wraps an existing client.
func New(client pkgmqtt.Client, topicRoot string) *MQTTNotifier {
	return &MQTTNotifier{client: client, topicRoot: topicRoot}
}

// Topic is where events for vehicle are published.
func (n *MQTTNotifier) Topic(vehicle string) string {
	return paths.VehicleTopic(n.topicRoot, model.SafeSegment(vehicle), paths.Reports)
}

func (n *MQTTNotifier) Notify(ctx context.Context, event *model.ReportEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode report event: %w", err)
	}

	if err := n.client.Publish(ctx, n.Topic(event.Vehicle), qosAtLeastOnce, false, payload); err != nil {
		return fmt.Errorf("failed to publish report event: %w", err)
	}
	return nil
}
