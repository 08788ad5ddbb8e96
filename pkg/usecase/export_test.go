package usecase

// PickBestAgent is exported for testing
var PickBestAgent = (*UseCases).pickBestAgent

// HasRecentCriticalRisk is exported for testing
var HasRecentCriticalRisk = (*UseCases).hasRecentCriticalRisk

// MeanMinutes is exported for testing
var MeanMinutes = meanMinutes

// MedianMinutes is exported for testing
var MedianMinutes = medianMinutes

// ParseCaseToken is exported for testing
var ParseCaseToken = parseCaseToken
