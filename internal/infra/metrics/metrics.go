package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	UpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Обработанные апдейты по типу события",
	}, []string{"kind"})

	HandlerErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_handler_errors_total",
		Help: "Ошибки обработчиков по типу события",
	}, []string{"kind"})

	ErrorReportsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_error_reports_total",
		Help: "Отправленные разработчику отчёты об ошибках",
	})

	DownloadBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "media_download_bytes_total",
		Help: "Суммарный объём скачанных медиафайлов",
	})

	DownloadSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "media_download_seconds",
		Help:    "Время скачивания медиафайла",
		Buckets: prometheus.DefBuckets,
	})

	NetworkRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "network_request_duration_seconds",
		Help:    "Длительность сетевых запросов",
		Buckets: prometheus.DefBuckets,
	}, []string{"component", "operation", "target", "status"})

	NetworkRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "network_request_total",
		Help: "Количество сетевых запросов",
	}, []string{"component", "operation", "target", "status"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		UpdatesTotal,
		HandlerErrorsTotal,
		ErrorReportsTotal,
		DownloadBytesTotal,
		DownloadSeconds,
		NetworkRequestDuration,
		NetworkRequestTotal,
	)
}

// ObserveNetworkRequest записывает длительность и статус сетевого запроса.
func ObserveNetworkRequest(component, operation, target string, start time.Time, err error) {
	if component == "" {
		component = "unknown"
	}
	if operation == "" {
		operation = "unknown"
	}
	if target == "" {
		target = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	duration := time.Since(start).Seconds()
	NetworkRequestDuration.WithLabelValues(component, operation, target, status).Observe(duration)
	NetworkRequestTotal.WithLabelValues(component, operation, target, status).Inc()
}

// IncUpdate увеличивает счётчик апдейтов по типу события.
func IncUpdate(kind string) {
	UpdatesTotal.WithLabelValues(kind).Inc()
}

// IncHandlerError увеличивает счётчик ошибок обработчиков.
func IncHandlerError(kind string) {
	HandlerErrorsTotal.WithLabelValues(kind).Inc()
}

// IncErrorReport увеличивает счётчик отправленных отчётов.
func IncErrorReport() {
	ErrorReportsTotal.Inc()
}

// ObserveDownload записывает объём и длительность скачивания.
func ObserveDownload(bytes int64, elapsed time.Duration) {
	if bytes > 0 {
		DownloadBytesTotal.Add(float64(bytes))
	}
	DownloadSeconds.Observe(elapsed.Seconds())
}
