package entity

import "time"

// ContactAttachment metadatos de un archivo asociado a un contacto.
// El objeto binario vive en el almacenamiento de archivos; aquí solo la referencia.
type ContactAttachment struct {
	ID          string
	TenantID    string
	ContactID   string
	FileName    string
	FileURL     string
	FileSize    int64
	ContentType string
	Description string
	UploadedBy  string
	CreatedAt   time.Time
}
