package database

// Chaves das coleções persistidas. Os nomes vêm do armazenamento original do
// CRM e fazem parte do layout externo, não renomear.
const (
	FunnelsKey    = "crm_funnels"
	LeadsKey      = "crm_leads"
	ProductsKey   = "crm_products"
	ActivitiesKey = "activities"
	LogsKey       = "systemLogs"
)
