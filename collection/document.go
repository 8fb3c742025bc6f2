package collection

// Document is an untyped record: any JSON object with a string "id".
type Document map[string]any

func (d Document) GetID() string {
	id, _ := d[idField].(string)
	return id
}
