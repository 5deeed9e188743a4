package pipeline

import (
	"math"

	"github.com/blaisecz/sleep-monitor/internal/domain"
)

// minHRVSamples is the minimum number of heart-rate readings needed for a
// meaningful RR-interval series.
const minHRVSamples = 3

// sessionFeatures computes whole-session statistics across every record in
// the bucket. These sit alongside the single-sample score contract and do
// not feed into the composite score.
func (s *Scorer) sessionFeatures(records []domain.FeedRecord) *domain.SessionFeatures {
	var bpm, spo2, emg, motion []float64
	for _, r := range records {
		if v := domain.ParseNumeric(r.Field(s.mapping.HeartRate)); v != nil {
			bpm = append(bpm, *v)
		}
		if v := domain.ParseNumeric(r.Field(s.mapping.SpO2)); v != nil {
			spo2 = append(spo2, *v)
		}
		if v := domain.ParseNumeric(r.Field(s.mapping.EMG)); v != nil {
			emg = append(emg, *v)
		}
		if v := domain.ParseNumeric(r.Field(s.mapping.Motion)); v != nil {
			motion = append(motion, *v)
		}
	}

	features := &domain.SessionFeatures{}

	if rmssd, sdnn, ok := heartRateVariability(bpm); ok {
		features.HRVRMSSD = &rmssd
		features.HRVSDNN = &sdnn
	}

	if len(spo2) > 0 {
		minSpO2 := spo2[0]
		dips := 0
		sum := 0.0
		for _, v := range spo2 {
			sum += v
			if v < minSpO2 {
				minSpO2 = v
			}
			if v < 95 {
				dips++
			}
		}
		mean := round2(sum / float64(len(spo2)))
		features.MeanSpO2 = &mean
		features.MinSpO2 = &minSpO2
		features.SpO2DipCount = dips
	}

	if len(emg) > 0 {
		sum := 0.0
		sumSquares := 0.0
		for _, v := range emg {
			sum += v
			sumSquares += v * v
		}
		mean := round2(sum / float64(len(emg)))
		rms := round2(math.Sqrt(sumSquares / float64(len(emg))))
		features.MeanEMG = &mean
		features.EMGRMS = &rms
	}

	if len(motion) > 0 {
		total := 0.0
		for _, v := range motion {
			total += math.Abs(v)
		}
		total = round2(total)
		features.TotalMotion = &total
	}

	return features
}

// heartRateVariability derives RMSSD and SDNN from a BPM series by
// converting to RR intervals (60000/bpm, milliseconds) and trimming outliers
// beyond three standard deviations from the mean.
func heartRateVariability(bpm []float64) (rmssd, sdnn float64, ok bool) {
	if len(bpm) < minHRVSamples {
		return 0, 0, false
	}

	rr := make([]float64, 0, len(bpm))
	for _, v := range bpm {
		if v > 0 {
			rr = append(rr, 60000/v)
		}
	}
	if len(rr) < minHRVSamples {
		return 0, 0, false
	}

	mean, std := meanStd(rr)
	trimmed := rr[:0]
	for _, v := range rr {
		if math.Abs(v-mean) < 3*std || std == 0 {
			trimmed = append(trimmed, v)
		}
	}
	if len(trimmed) < 2 {
		return 0, 0, false
	}

	sumSqDiffs := 0.0
	for i := 1; i < len(trimmed); i++ {
		d := trimmed[i] - trimmed[i-1]
		sumSqDiffs += d * d
	}
	rmssd = round2(math.Sqrt(sumSqDiffs / float64(len(trimmed)-1)))

	_, sdnn = meanStd(trimmed)
	return rmssd, round2(sdnn), true
}

// meanStd returns the mean and population standard deviation.
func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(len(values))

	sumSquares := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return mean, math.Sqrt(sumSquares / float64(len(values)))
}
