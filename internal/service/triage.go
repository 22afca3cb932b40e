package service

import (
	"EnvWatchAPI/internal/constant"
	"EnvWatchAPI/internal/model"
	"strings"
)

// Pure reduction and categorization rules, kept free of I/O so they can be
// tested without network access.

// BestPrediction picks the single highest-confidence prediction.
func BestPrediction(preds []model.Prediction) (model.Prediction, bool) {
	if len(preds) == 0 {
		return model.Prediction{}, false
	}

	best := preds[0]
	for _, p := range preds[1:] {
		if p.Confidence > best.Confidence {
			best = p
		}
	}
	return best, true
}

// AnalyzeDetection reduces a detection result to the stored analysis. An
// answered call with no predictions yields detected=false, class Unknown.
func AnalyzeDetection(res *model.DetectionResult) model.AIAnalysis {
	analysis := model.AIAnalysis{
		Detected:   false,
		Class:      constant.ClassUnknown,
		Confidence: 0,
	}
	if res == nil {
		return analysis
	}

	analysis.RawResult = res.Raw

	if best, ok := BestPrediction(res.Predictions); ok {
		analysis.Detected = true
		analysis.Class = best.Class
		analysis.Confidence = best.Confidence
	}
	return analysis
}

// DeriveCategory applies the keyword/threshold rule: a detected class
// containing a garbage keyword with confidence above the threshold maps to
// Sampah; everything else is left for manual verification.
func DeriveCategory(analysis model.AIAnalysis) string {
	if !analysis.Detected || analysis.Confidence <= constant.GarbageConfidenceThreshold {
		return constant.CategoryButuhVerifikasi
	}

	class := strings.ToLower(analysis.Class)
	for _, keyword := range constant.GarbageKeywords {
		if strings.Contains(class, keyword) {
			return constant.CategorySampah
		}
	}
	return constant.CategoryButuhVerifikasi
}
