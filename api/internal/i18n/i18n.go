package i18n

import (
	"golang.org/x/text/language"
)

type Header struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	PoweredBy string `json:"poweredBy"`
}

type Status struct {
	Title        string `json:"title"`
	Checking     string `json:"checking"`
	Connected    string `json:"connected"`
	Disconnected string `json:"disconnected"`
	Refresh      string `json:"refresh"`
}

type Capture struct {
	Title          string `json:"title"`
	Placeholder    string `json:"placeholder"`
	PlaceholderSub string `json:"placeholderSub"`
	StartCamera    string `json:"startCamera"`
	CaptureAnalyze string `json:"captureAnalyze"`
	UploadImage    string `json:"uploadImage"`
	StopCamera     string `json:"stopCamera"`
	Analyzing      string `json:"analyzing"`
	AnalyzingTime  string `json:"analyzingTime"`
}

type Results struct {
	Title           string `json:"title"`
	NoAnalysis      string `json:"noAnalysis"`
	NoAnalysisSub   string `json:"noAnalysisSub"`
	Score           string `json:"score"`
	AnalyzedBy      string `json:"analyzedBy"`
	PostureObserved string `json:"postureObserved"`
	RisksIdentified string `json:"risksIdentified"`
	Recommendations string `json:"recommendations"`
	PoweredBy       string `json:"poweredBy"`
}

type Risks struct {
	High   string `json:"high"`
	Medium string `json:"medium"`
	Low    string `json:"low"`
}

type Errors struct {
	Title         string `json:"title"`
	CameraAccess  string `json:"cameraAccess"`
	ServerDown    string `json:"serverDown"`
	APIKeyMissing string `json:"apiKeyMissing"`
	InvalidFormat string `json:"invalidFormat"`
	General       string `json:"general"`
}

type Footer struct {
	Copyright string `json:"copyright"`
}

// Strings is the UI text for one language.
type Strings struct {
	Header  Header  `json:"header"`
	Status  Status  `json:"status"`
	Capture Capture `json:"capture"`
	Results Results `json:"results"`
	Risks   Risks   `json:"risks"`
	Errors  Errors  `json:"errors"`
	Footer  Footer  `json:"footer"`
}

const Default = "es"

var table = map[string]Strings{
	"en": {
		Header: Header{
			Title:     "Biomechanical Analysis",
			Subtitle:  "AI-Powered Ergonomic Assessment",
			PoweredBy: "Gemini AI",
		},
		Status: Status{
			Title:        "System Status:",
			Checking:     "Checking connection...",
			Connected:    "Connected",
			Disconnected: "Server disconnected",
			Refresh:      "Refresh",
		},
		Capture: Capture{
			Title:          "Image Capture",
			Placeholder:    "Capture your work posture",
			PlaceholderSub: "Use camera or upload a photo",
			StartCamera:    "Start Camera",
			CaptureAnalyze: "Capture & Analyze",
			UploadImage:    "Upload Image",
			StopCamera:     "Stop Camera",
			Analyzing:      "Analyzing with Gemini AI...",
			AnalyzingTime:  "This may take 5-10 seconds",
		},
		Results: Results{
			Title:           "Analysis Results",
			NoAnalysis:      "No analysis yet",
			NoAnalysisSub:   "Capture an image to begin",
			Score:           "Ergonomic Score",
			AnalyzedBy:      "Analyzed with",
			PostureObserved: "Observed Posture",
			RisksIdentified: "Identified Risks",
			Recommendations: "Recommendations",
			PoweredBy:       "Analysis by Adapty Global • Powered by Google Gemini AI",
		},
		Risks: Risks{High: "HIGH", Medium: "MEDIUM", Low: "LOW"},
		Errors: Errors{
			Title:         "Analysis Error",
			CameraAccess:  "Error accessing camera: ",
			ServerDown:    "Check server status",
			APIKeyMissing: "⚠️ API Key not configured. Check .env file",
			InvalidFormat: "Unsupported format. Use images (JPG, PNG) or videos.",
			General:       "An error occurred during analysis",
		},
		Footer: Footer{
			Copyright: "Biomechanical Analysis System • Adapty Global • Powered by Google Gemini AI",
		},
	},
	"es": {
		Header: Header{
			Title:     "Análisis Biomecánico",
			Subtitle:  "Evaluación Ergonómica con IA",
			PoweredBy: "Gemini AI",
		},
		Status: Status{
			Title:        "Estado del Sistema:",
			Checking:     "Verificando conexión...",
			Connected:    "Conectado",
			Disconnected: "Servidor desconectado",
			Refresh:      "Actualizar",
		},
		Capture: Capture{
			Title:          "Captura de Imagen",
			Placeholder:    "Captura tu postura de trabajo",
			PlaceholderSub: "Usa la cámara o sube una foto",
			StartCamera:    "Activar Cámara",
			CaptureAnalyze: "Capturar y Analizar",
			UploadImage:    "Subir Imagen",
			StopCamera:     "Detener Cámara",
			Analyzing:      "Analizando con Gemini AI...",
			AnalyzingTime:  "Esto puede tomar 5-10 segundos",
		},
		Results: Results{
			Title:           "Resultados del Análisis",
			NoAnalysis:      "Sin análisis aún",
			NoAnalysisSub:   "Captura una imagen para comenzar",
			Score:           "Puntuación Ergonómica",
			AnalyzedBy:      "Analizado con",
			PostureObserved: "Postura Observada",
			RisksIdentified: "Riesgos Identificados",
			Recommendations: "Recomendaciones",
			PoweredBy:       "Análisis por Adapty Global • Powered by Google Gemini AI",
		},
		Risks: Risks{High: "ALTO", Medium: "MEDIO", Low: "BAJO"},
		Errors: Errors{
			Title:         "Error en el Análisis",
			CameraAccess:  "Error al acceder a la cámara: ",
			ServerDown:    "Verificar estado del servidor",
			APIKeyMissing: "⚠️ API Key no configurada. Revisa el archivo .env",
			InvalidFormat: "Formato no soportado. Usa imágenes (JPG, PNG) o videos.",
			General:       "Ocurrió un error durante el análisis",
		},
		Footer: Footer{
			Copyright: "Sistema de Análisis Biomecánico • Adapty Global • Powered by Google Gemini AI",
		},
	},
}

// Supported reports whether lang has a table of its own.
func Supported(lang string) bool {
	_, ok := table[lang]
	return ok
}

// Lookup returns the strings for lang, Spanish when unknown.
func Lookup(lang string) Strings {
	if s, ok := table[lang]; ok {
		return s
	}
	return table[Default]
}

// RiskLabel returns the display label for a canonical level
// ("high" | "medium" | "low"); unknown levels are returned as is.
func (s Strings) RiskLabel(level string) string {
	switch level {
	case "high":
		return s.Risks.High
	case "medium":
		return s.Risks.Medium
	case "low":
		return s.Risks.Low
	default:
		return level
	}
}

var matcher = language.NewMatcher([]language.Tag{
	language.Spanish, // first entry is the fallback
	language.English,
})

// FromAcceptLanguage picks a supported tag from an Accept-Language header.
func FromAcceptLanguage(header string) string {
	if header == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	if idx == 1 {
		return "en"
	}
	return "es"
}
