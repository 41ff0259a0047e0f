// racunkoctl tareas de operación: migraciones, worker de correos, PDFs y hash de contraseñas.
package main

func main() {
	Execute()
}
