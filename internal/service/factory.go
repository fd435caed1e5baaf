package service

type Services struct {
	analyzer Analyzer
}

func NewServices(analyzer Analyzer) *Services {
	return &Services{analyzer: analyzer}
}

func (s *Services) Analysis() AnalysisService {
	return NewAnalysisService(s.analyzer)
}
