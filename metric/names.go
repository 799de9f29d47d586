package metric

// Preset metric names.
const (
	// MetricEntityLinkingF1 scores entity links against the gold set.
	MetricEntityLinkingF1 = "entity_linking_f1"
	// MetricMentionDetectionF1 scores mention spotting only, ignoring QIDs.
	MetricMentionDetectionF1 = "mention_detection_f1"
	// MetricGroundTruthAvgScore scores answers against ground-truth references.
	MetricGroundTruthAvgScore = "ground_truth_avg_score"
)
