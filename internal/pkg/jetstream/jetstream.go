package jetstream

import (
	"strconv"

	"github.com/nats-io/nats.go"
)

const (
	SiegeLogStream       = "siege-logs"
	SiegeLogSubjects     = "SIEGELOG.*"
	SiegeLogSubjectBatch = "SIEGELOG.BATCH"

	// SiegeLogQueue is the queue group shared by ingest consumers.
	SiegeLogQueue = "siege-logs-ingest"
)

// MessageID renders the consumer sequence of a delivered message for logging.
func MessageID(pair nats.SequencePair) string {
	return "seq:" + strconv.FormatUint(pair.Consumer, 10)
}
