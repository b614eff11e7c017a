package email

const (
	subjectLeadAssignedFmt = "Nuevo lead asignado: %s"
)
